package chainstate

// from health_check.go
//go:generate moq -pkg mocks -out ./mocks/health_watch_server_mock.go . HealthWatchServer

// from server.go
//go:generate moq -pkg mocks -out ./mocks/mq_client_mock.go . MessageQueueClient

// from background_workers.go
//go:generate moq -pkg mocks -out ./mocks/event_dispatcher_mock.go . EventDispatcher
