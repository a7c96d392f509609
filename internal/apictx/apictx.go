// Package apictx holds the generated context shapes used by the service.
//
// The shapes are declared in contexts.yaml and rendered by ctxgen. Handlers
// state the fields they need through the generated Has interfaces, so a
// missing field is a build failure rather than a runtime lookup miss.
package apictx

//go:generate go run github.com/jsamuelsen/go-api-runtime/cmd/ctxgen -decl contexts.yaml -out contexts_gen.go
