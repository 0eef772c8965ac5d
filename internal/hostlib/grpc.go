package hostlib

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/jhump/protoreflect/desc"
	"github.com/jhump/protoreflect/desc/protoparse"
	"github.com/jhump/protoreflect/dynamic"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/thunklang/es3vm/internal/evaluator"
)

// protoRegistry holds every file descriptor loaded via grpcLoadProto,
// keyed by file name, shared across every script running against the same
// Host — grounded on the teacher's package-level protoRegistry in
// builtins_grpc.go (same map-of-file-descriptors, same RWMutex guard).
type protoRegistry struct {
	mu    sync.RWMutex
	files map[string]*desc.FileDescriptor
}

func newProtoRegistry() *protoRegistry {
	return &protoRegistry{files: make(map[string]*desc.FileDescriptor)}
}

func (r *protoRegistry) add(fds []*desc.FileDescriptor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, fd := range fds {
		r.files[fd.GetName()] = fd
	}
}

func (r *protoRegistry) findMethod(path string) (*desc.MethodDescriptor, error) {
	serviceName, methodName, err := splitMethodPath(path)
	if err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, fd := range r.files {
		svc := fd.FindService(serviceName)
		if svc == nil {
			continue
		}
		if md := svc.FindMethodByName(methodName); md != nil {
			return md, nil
		}
	}
	return nil, fmt.Errorf("method %q not found (call grpcLoadProto first)", path)
}

func splitMethodPath(path string) (service, method string, err error) {
	i := strings.LastIndex(path, "/")
	if i < 0 {
		return "", "", fmt.Errorf("invalid method path %q, expected \"package.Service/Method\"", path)
	}
	return path[:i], path[i+1:], nil
}

// installGRPC wires a dynamic gRPC client library: dial a server, load a
// .proto file at runtime, and invoke an arbitrary method by name without
// any generated stubs — exactly the pattern the teacher's builtins_grpc.go
// gives scripts, trimmed to the client half (grpcServer/grpcRegister/
// grpcServe's server side needs a callback into a live script evaluator
// per RPC, which belongs in internal/evaluator's call machinery, not a
// standalone host library — left for a future server-side companion).
func installGRPC(h evaluator.Host) {
	reg := newProtoRegistry()
	setGlobal(h, "grpcDial", h.NewFunction(grpcDial(h), 1, "grpcDial", ""))
	setGlobal(h, "grpcLoadProto", h.NewFunction(grpcLoadProto(reg, h), 1, "grpcLoadProto", ""))
	setGlobal(h, "grpcInvoke", h.NewFunction(grpcInvoke(reg, h), 3, "grpcInvoke", ""))
	setGlobal(h, "grpcClose", h.NewFunction(grpcClose(h), 1, "grpcClose", ""))
}

// grpcConn is stashed as an opaque property value on a plain script
// object returned to the caller — internal/runtime's Object stores any
// Go value in a property, so the live *grpc.ClientConn just rides along
// without needing a dedicated script-visible type.
const connHandleKey = "$grpcConn"

func grpcDial(h evaluator.Host) evaluator.NativeFunc {
	return func(this evaluator.Value, args []evaluator.Value) (evaluator.Value, error) {
		if len(args) == 0 {
			return nil, fmt.Errorf("grpcDial(target) expects a target string")
		}
		target, ok := args[0].(string)
		if !ok {
			return nil, fmt.Errorf("grpcDial(target) expects a target string")
		}
		conn, err := grpc.NewClient(target, grpc.WithTransportCredentials(insecure.NewCredentials()))
		if err != nil {
			return nil, err
		}
		handle := h.NewObject()
		if err := h.SetProperty(handle, connHandleKey, conn); err != nil {
			return nil, err
		}
		if err := h.SetProperty(handle, "target", target); err != nil {
			return nil, err
		}
		return handle, nil
	}
}

func grpcClose(h evaluator.Host) evaluator.NativeFunc {
	return func(this evaluator.Value, args []evaluator.Value) (evaluator.Value, error) {
		conn, err := connFromHandle(h, args)
		if err != nil {
			return nil, err
		}
		return h.Undefined(), conn.Close()
	}
}

func grpcLoadProto(reg *protoRegistry, h evaluator.Host) evaluator.NativeFunc {
	return func(this evaluator.Value, args []evaluator.Value) (evaluator.Value, error) {
		if len(args) == 0 {
			return nil, fmt.Errorf("grpcLoadProto(path) expects a file path")
		}
		path, ok := args[0].(string)
		if !ok {
			return nil, fmt.Errorf("grpcLoadProto(path) expects a file path")
		}
		parser := protoparse.Parser{ImportPaths: []string{"."}}
		fds, err := parser.ParseFiles(path)
		if err != nil {
			return nil, fmt.Errorf("failed to parse proto: %w", err)
		}
		reg.add(fds)
		return h.Undefined(), nil
	}
}

func grpcInvoke(reg *protoRegistry, h evaluator.Host) evaluator.NativeFunc {
	return func(this evaluator.Value, args []evaluator.Value) (evaluator.Value, error) {
		if len(args) != 3 {
			return nil, fmt.Errorf("grpcInvoke(conn, method, request) expects 3 arguments")
		}
		conn, err := connFromHandle(h, args[:1])
		if err != nil {
			return nil, err
		}
		methodPath, ok := args[1].(string)
		if !ok {
			return nil, fmt.Errorf("grpcInvoke: method must be a string")
		}
		md, err := reg.findMethod(methodPath)
		if err != nil {
			return nil, err
		}

		reqMsg := dynamic.NewMessage(md.GetInputType())
		if err := hostValueToMessage(h, args[2], reqMsg); err != nil {
			return nil, fmt.Errorf("failed to build request: %w", err)
		}
		respMsg := dynamic.NewMessage(md.GetOutputType())

		wireMethod := methodPath
		if !strings.HasPrefix(wireMethod, "/") {
			wireMethod = "/" + wireMethod
		}
		if err := conn.Invoke(context.Background(), wireMethod, reqMsg, respMsg); err != nil {
			return nil, fmt.Errorf("RPC failed: %w", err)
		}
		return messageToHostValue(h, respMsg)
	}
}

func connFromHandle(h evaluator.Host, args []evaluator.Value) (*grpc.ClientConn, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("expected a grpcDial() handle")
	}
	raw, err := h.GetProperty(args[0], connHandleKey)
	if err != nil {
		return nil, err
	}
	conn, ok := raw.(*grpc.ClientConn)
	if !ok {
		return nil, fmt.Errorf("expected a grpcDial() handle")
	}
	return conn, nil
}

// hostValueToMessage fills msg's fields from a plain script object's own
// enumerable properties, named the same as the proto field — the dynamic
// analogue of the teacher's objectToDynamicMessage, generalized from its
// Record/Map-only source shape to whatever Enumerate reports.
func hostValueToMessage(h evaluator.Host, v evaluator.Value, msg *dynamic.Message) error {
	keys, err := h.Enumerate(v)
	if err != nil {
		return err
	}
	for _, name := range keys {
		fd := msg.GetMessageDescriptor().FindFieldByName(name)
		if fd == nil {
			continue
		}
		fv, err := h.GetProperty(v, name)
		if err != nil {
			return err
		}
		converted, err := fieldValue(h, fv, fd)
		if err != nil {
			return fmt.Errorf("field %s: %w", name, err)
		}
		if converted != nil {
			msg.SetField(fd, converted)
		}
	}
	return nil
}

func fieldValue(h evaluator.Host, v evaluator.Value, fd *desc.FieldDescriptor) (any, error) {
	if fd.IsRepeated() {
		n, isArr, err := arrayLength(h, v)
		if err != nil || !isArr {
			return nil, fmt.Errorf("expected array for repeated field %s", fd.GetName())
		}
		out := make([]any, n)
		for i := 0; i < n; i++ {
			ev, err := h.GetProperty(v, indexKey(i))
			if err != nil {
				return nil, err
			}
			sv, err := scalarFieldValue(h, ev, fd)
			if err != nil {
				return nil, err
			}
			out[i] = sv
		}
		return out, nil
	}
	return scalarFieldValue(h, v, fd)
}

func scalarFieldValue(h evaluator.Host, v evaluator.Value, fd *desc.FieldDescriptor) (any, error) {
	if fd.GetMessageType() != nil {
		nested := dynamic.NewMessage(fd.GetMessageType())
		if err := hostValueToMessage(h, v, nested); err != nil {
			return nil, err
		}
		return nested, nil
	}
	switch x := v.(type) {
	case float64:
		return numberForField(x, fd), nil
	case string:
		return x, nil
	case bool:
		return x, nil
	default:
		return nil, fmt.Errorf("unsupported value for field %s", fd.GetName())
	}
}

func numberForField(n float64, fd *desc.FieldDescriptor) any {
	switch fd.GetType() {
	case descriptorpb.FieldDescriptorProto_TYPE_FLOAT:
		return float32(n)
	case descriptorpb.FieldDescriptorProto_TYPE_INT32,
		descriptorpb.FieldDescriptorProto_TYPE_SINT32,
		descriptorpb.FieldDescriptorProto_TYPE_SFIXED32,
		descriptorpb.FieldDescriptorProto_TYPE_ENUM:
		return int32(n)
	case descriptorpb.FieldDescriptorProto_TYPE_UINT32, descriptorpb.FieldDescriptorProto_TYPE_FIXED32:
		return uint32(n)
	case descriptorpb.FieldDescriptorProto_TYPE_UINT64, descriptorpb.FieldDescriptorProto_TYPE_FIXED64:
		return uint64(n)
	case descriptorpb.FieldDescriptorProto_TYPE_INT64,
		descriptorpb.FieldDescriptorProto_TYPE_SINT64,
		descriptorpb.FieldDescriptorProto_TYPE_SFIXED64:
		return int64(n)
	default:
		return n
	}
}

// messageToHostValue is the inverse of hostValueToMessage: a fresh script
// object with one property per populated proto field.
func messageToHostValue(h evaluator.Host, msg *dynamic.Message) (evaluator.Value, error) {
	out := h.NewObject()
	for _, fd := range msg.GetMessageDescriptor().GetFields() {
		val := msg.GetField(fd)
		hv, err := protoValueToHost(h, val, fd)
		if err != nil {
			return nil, err
		}
		if err := h.SetProperty(out, fd.GetName(), hv); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func protoValueToHost(h evaluator.Host, val any, fd *desc.FieldDescriptor) (evaluator.Value, error) {
	if fd.IsRepeated() {
		slice, ok := val.([]any)
		if !ok {
			return h.NewArray(nil), nil
		}
		elems := make([]evaluator.Value, len(slice))
		for i, item := range slice {
			hv, err := protoScalarToHost(h, item, fd)
			if err != nil {
				return nil, err
			}
			elems[i] = hv
		}
		return h.NewArray(elems), nil
	}
	return protoScalarToHost(h, val, fd)
}

func protoScalarToHost(h evaluator.Host, val any, fd *desc.FieldDescriptor) (evaluator.Value, error) {
	if nested, ok := val.(*dynamic.Message); ok {
		return messageToHostValue(h, nested)
	}
	switch x := val.(type) {
	case int32:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case uint32:
		return float64(x), nil
	case uint64:
		return float64(x), nil
	case float32:
		return float64(x), nil
	case float64:
		return x, nil
	case bool:
		return x, nil
	case string:
		return x, nil
	case []byte:
		return string(x), nil
	case nil:
		return h.Undefined(), nil
	default:
		return h.Undefined(), nil
	}
}
