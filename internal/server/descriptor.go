package server

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/jhump/protoreflect/desc"
	"github.com/jhump/protoreflect/desc/protoparse"
)

//go:embed engine.proto
var engineProto string

const (
	protoFile   = "engine.proto"
	ServiceName = "minilang.v1.Engine"

	MethodCheck = "Check"
	MethodRun   = "Run"
)

var (
	loadOnce    sync.Once
	engineSD    *desc.ServiceDescriptor
	engineSDErr error
)

// ServiceDescriptor parses the embedded engine.proto once and returns
// the Engine service.
func ServiceDescriptor() (*desc.ServiceDescriptor, error) {
	loadOnce.Do(func() {
		parser := protoparse.Parser{
			Accessor: protoparse.FileContentsFromMap(map[string]string{protoFile: engineProto}),
		}
		fds, err := parser.ParseFiles(protoFile)
		if err != nil {
			engineSDErr = fmt.Errorf("parsing %s: %w", protoFile, err)
			return
		}
		engineSD = fds[0].FindService(ServiceName)
		if engineSD == nil {
			engineSDErr = fmt.Errorf("service %s not found in %s", ServiceName, protoFile)
		}
	})
	return engineSD, engineSDErr
}

// FullMethod returns the gRPC path of an Engine method.
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}
