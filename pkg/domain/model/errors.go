package model

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for domain operations
var (
	ErrLoadInProgress = goerr.New("a dataset load is already in progress")
)
