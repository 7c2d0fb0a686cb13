package server

import (
	"context"
	"fmt"

	"github.com/jhump/protoreflect/desc"
	"github.com/jhump/protoreflect/dynamic"
	"google.golang.org/grpc"
)

// Client calls a remote Engine service.
type Client struct {
	conn grpc.ClientConnInterface
	sd   *desc.ServiceDescriptor
}

func NewClient(conn grpc.ClientConnInterface) (*Client, error) {
	sd, err := ServiceDescriptor()
	if err != nil {
		return nil, err
	}
	return &Client{conn: conn, sd: sd}, nil
}

func (c *Client) Check(ctx context.Context, req Request) (*Response, error) {
	return c.invoke(ctx, MethodCheck, req)
}

func (c *Client) Run(ctx context.Context, req Request) (*Response, error) {
	return c.invoke(ctx, MethodRun, req)
}

func (c *Client) invoke(ctx context.Context, method string, req Request) (*Response, error) {
	md := c.sd.FindMethodByName(method)
	if md == nil {
		return nil, fmt.Errorf("method %s not found in %s", method, ServiceName)
	}
	in, err := req.toMessage(md.GetInputType())
	if err != nil {
		return nil, err
	}
	out := dynamic.NewMessage(md.GetOutputType())
	if err := c.conn.Invoke(ctx, FullMethod(method), in, out); err != nil {
		return nil, err
	}
	return responseFromMessage(out), nil
}
