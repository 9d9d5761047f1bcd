package store

// from store.go
//go:generate moq -pkg mocks -out ./mocks/chain_state_store_mock.go . ChainStateStore
