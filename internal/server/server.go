package server

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhump/protoreflect/desc"
	"github.com/jhump/protoreflect/dynamic"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/funvibe/minilang/internal/analyzer"
	"github.com/funvibe/minilang/internal/config"
	"github.com/funvibe/minilang/internal/evaluator"
	"github.com/funvibe/minilang/internal/parser"
	"github.com/funvibe/minilang/internal/pipeline"
)

// Server exposes the engine as the minilang.v1.Engine gRPC service.
// Every request gets its own checker, evaluator and environments.
type Server struct {
	cfg  *config.Config
	grpc *grpc.Server
}

func New(cfg *config.Config, opts ...grpc.ServerOption) (*Server, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	sd, err := ServiceDescriptor()
	if err != nil {
		return nil, err
	}
	s := &Server{cfg: cfg, grpc: grpc.NewServer(opts...)}
	s.grpc.RegisterService(serviceDesc(sd), s)
	return s, nil
}

// serviceDesc builds the grpc registration for sd; messages travel as
// dynamic messages.
func serviceDesc(sd *desc.ServiceDescriptor) *grpc.ServiceDesc {
	gd := &grpc.ServiceDesc{
		ServiceName: sd.GetFullyQualifiedName(),
		HandlerType: (*interface{})(nil),
		Methods:     []grpc.MethodDesc{},
		Streams:     []grpc.StreamDesc{},
		Metadata:    sd.GetFile().GetName(),
	}
	for _, method := range sd.GetMethods() {
		md := method
		gd.Methods = append(gd.Methods, grpc.MethodDesc{
			MethodName: md.GetName(),
			Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
				in := dynamic.NewMessage(md.GetInputType())
				if err := dec(in); err != nil {
					return nil, err
				}
				handler := func(ctx context.Context, req interface{}) (interface{}, error) {
					return srv.(*Server).handleUnary(ctx, md, req.(*dynamic.Message))
				}
				if interceptor == nil {
					return handler(ctx, in)
				}
				info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(md.GetName())}
				return interceptor(ctx, in, info, handler)
			},
		})
	}
	return gd
}

func (s *Server) handleUnary(ctx context.Context, md *desc.MethodDescriptor, in *dynamic.Message) (interface{}, error) {
	resp, err := s.Execute(ctx, md.GetName(), requestFromMessage(in))
	if err != nil {
		return nil, err
	}
	out, err := resp.toMessage(md.GetOutputType())
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encoding response: %v", err)
	}
	return out, nil
}

// Execute checks (MethodCheck) or checks and runs (MethodRun) one program.
// Language errors are reported as diagnostics in the response; the error
// return is for bad requests only.
func (s *Server) Execute(ctx context.Context, method string, req Request) (*Response, error) {
	if method != MethodCheck && method != MethodRun {
		return nil, status.Errorf(codes.Unimplemented, "unknown method %s", method)
	}
	cfg := *s.cfg
	switch req.Scoping {
	case "":
	case config.ScopingStatic, config.ScopingDynamic:
		cfg.Scoping = req.Scoping
	default:
		return nil, status.Errorf(codes.InvalidArgument, "scoping must be %q or %q, got %q",
			config.ScopingStatic, config.ScopingDynamic, req.Scoping)
	}
	if req.SkipCheck {
		cfg.SkipCheck = true
	}

	runID := uuid.NewString()
	start := time.Now()
	if cfg.Server.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Server.Timeout)
		defer cancel()
	}

	var out bytes.Buffer
	pctx := pipeline.NewPipelineContext([]byte(req.Source), req.File, &cfg)
	pctx.Ctx = ctx
	pctx.In = strings.NewReader(req.Stdin)
	pctx.Out = &out

	processors := []pipeline.Processor{&parser.ParserProcessor{}, &analyzer.SemanticAnalyzerProcessor{}}
	if method == MethodRun {
		processors = append(processors, &evaluator.EvaluatorProcessor{})
	}
	pctx = pipeline.New(processors...).Run(pctx)

	resp := &Response{RunID: runID, Output: out.String()}
	if pctx.ResultType != nil {
		resp.Type = pctx.ResultType.String()
	}
	if obj, ok := pctx.Result.(evaluator.Object); ok {
		resp.Result = evaluator.Repr(obj)
	}
	for _, de := range pctx.Errors {
		resp.Diagnostics = append(resp.Diagnostics, fromDiagnostic(de))
	}

	outcome := "ok"
	if len(resp.Diagnostics) > 0 {
		outcome = fmt.Sprintf("%s %s", resp.Diagnostics[0].Code, resp.Diagnostics[0].Name)
	}
	log.Printf("[%s] %s %s: %s in %s", runID, method, displayName(req.File), outcome, time.Since(start))
	return resp, nil
}

func displayName(file string) string {
	if file == "" {
		return "<request>"
	}
	return file
}

// Serve accepts connections on lis until Stop is called.
func (s *Server) Serve(lis net.Listener) error {
	return s.grpc.Serve(lis)
}

// ListenAndServe listens on the configured address.
func (s *Server) ListenAndServe() error {
	lis, err := net.Listen("tcp", s.cfg.Server.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.cfg.Server.Addr, err)
	}
	log.Printf("Engine service listening on %s", lis.Addr())
	return s.Serve(lis)
}

// Stop waits for in-flight requests, then stops the server.
func (s *Server) Stop() {
	s.grpc.GracefulStop()
}
