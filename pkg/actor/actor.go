// Package actor runs pipeline stages connected by channels. Each stage runs
// one or more workers; the first failing stage cancels the rest.
package actor

import "context"

type Actor interface {
	Run(context.Context) error
}
