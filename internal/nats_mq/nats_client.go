package nats_mq

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

var ErrFailedToConnect = errors.New("failed to connect to NATS server")

func WithLogin(user string, password string) nats.Option {
	return nats.UserInfo(user, password)
}

// ClientName returns a connection name unique per process so that connections of several replicas on one
// host can be told apart in the server's monitoring endpoints.
func ClientName(prefix string) (string, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s-%s-%s", prefix, hostname, uuid.NewString()[:8]), nil
}

func NewNatsClient(natsURL string, logger *slog.Logger, natsOpts ...nats.Option) (*nats.Conn, error) {
	logger = logger.With(slog.String("module", "nats"))

	name, err := ClientName("chainstate")
	if err != nil {
		return nil, err
	}

	opts := []nats.Option{
		nats.Name(name),
		nats.ErrorHandler(func(_ *nats.Conn, s *nats.Subscription, err error) {
			subject := ""
			if s != nil {
				subject = s.Subject
			}
			logger.Error("connection error", slog.String("subject", subject), slog.String("err", err.Error()))
		}),
		nats.DiscoveredServersHandler(func(nc *nats.Conn) {
			logger.Info("Discovered servers", slog.Any("known", nc.Servers()), slog.Any("discovered", nc.DiscoveredServers()))
		}),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err == nil {
				logger.Warn("client disconnected")
				return
			}
			logger.Error("client disconnected", slog.String("err", err.Error()))
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("client reconnected", slog.String("url", nc.ConnectedUrlRedacted()))
		}),
		nats.ClosedHandler(func(_ *nats.Conn) {
			logger.Info("client closed")
		}),
		nats.RetryOnFailedConnect(true),
		nats.PingInterval(2 * time.Minute),
		nats.MaxPingsOutstanding(2),
		nats.ReconnectBufSize(8 * 1024 * 1024),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2 * time.Second),
	}

	opts = append(opts, natsOpts...)

	nc, err := nats.Connect(natsURL, opts...)
	if err != nil {
		return nil, errors.Join(ErrFailedToConnect, err)
	}

	logger.Info("Connected to NATS", slog.String("name", name))

	return nc, nil
}
