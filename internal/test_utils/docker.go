package testutils

import (
	"fmt"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
)

const (
	dbName     = "main_test"
	dbUsername = "chainstate"
	dbPassword = "chainstate"
)

// runContainer starts a throwaway container which publishes containerPort on hostPort and removes itself once stopped.
func runContainer(pool *dockertest.Pool, opts *dockertest.RunOptions, containerPort docker.Port, hostPort string, tmpfs map[string]string) (*dockertest.Resource, error) {
	opts.ExposedPorts = []string{containerPort.Port()}
	opts.PortBindings = map[docker.Port][]docker.PortBinding{
		docker.Port(containerPort.Port()): {{HostIP: "0.0.0.0", HostPort: hostPort}},
	}

	resource, err := pool.RunWithOptions(opts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
		hc.Tmpfs = tmpfs
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start %s container: %v", opts.Repository, err)
	}

	return resource, nil
}

// RunPostgresql starts Postgres with the stock server configuration and returns its DSN.
func RunPostgresql(pool *dockertest.Pool, port string) (*dockertest.Resource, string, error) {
	opts := &dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "15.4",
		Env: []string{
			"POSTGRES_PASSWORD=" + dbPassword,
			"POSTGRES_USER=" + dbUsername,
			"POSTGRES_DB=" + dbName,
		},
	}

	resource, err := runContainer(pool, opts, "5432/tcp", port, map[string]string{"/var/lib/postgresql/data": ""})
	if err != nil {
		return nil, "", err
	}

	dsn := fmt.Sprintf("host=localhost port=%s user=%s password=%s dbname=%s sslmode=disable",
		resource.GetPort("5432/tcp"), dbUsername, dbPassword, dbName)

	return resource, dsn, nil
}

// RunNats starts a NATS server and returns its client URL.
func RunNats(pool *dockertest.Pool, port, name string, cmds ...string) (*dockertest.Resource, string, error) {
	opts := &dockertest.RunOptions{
		Repository: "nats",
		Tag:        "2.10.10",
		Name:       name,
		Cmd:        cmds,
	}

	resource, err := runContainer(pool, opts, "4222/tcp", port, nil)
	if err != nil {
		return nil, "", err
	}

	return resource, "nats://localhost:" + resource.GetPort("4222/tcp"), nil
}
