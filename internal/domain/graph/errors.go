package graph

import "errors"

var (
	ErrNoTransactions = errors.New("no transactions to analyze")
	ErrEmptyGraph     = errors.New("graph has no nodes")
)
