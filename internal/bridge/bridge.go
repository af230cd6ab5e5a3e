// Package bridge 桌面壳与 UI 之间的消息桥。
// 三个能力：greet / open-external / show-dialog，均不触达 API 或数据库。
// 帧格式为按行分隔的 JSON：请求 {id, method, params}，
// 响应 {id, result} 或 {id, error}。
package bridge

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"sync"

	"go.uber.org/zap"

	"github.com/d60-Lab/pos-service/pkg/logger"
)

const (
	MethodGreet        = "greet"
	MethodOpenExternal = "open-external"
	MethodShowDialog   = "show-dialog"
)

// Request 桥请求帧
type Request struct {
	ID     int64           `json:"id"`
	Method string          `json:"method"`
	Params json.RawMessage `json:"params"`
}

// Response 桥响应帧
type Response struct {
	ID     int64  `json:"id"`
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// DialogResult 对话框结果；Response 为用户点选的按钮序号（0=OK, 1=Cancel）
type DialogResult struct {
	Response int `json:"response"`
}

// Opener 打开外部链接的宿主实现
type Opener func(rawURL string) error

// Prompter 弹出原生对话框的宿主实现
type Prompter func(message string) (DialogResult, error)

// Bridge 能力分发器；宿主通过 Option 注入平台实现
type Bridge struct {
	opener   Opener
	prompter Prompter
}

type Option func(*Bridge)

func WithOpener(o Opener) Option { return func(b *Bridge) { b.opener = o } }

func WithPrompter(p Prompter) Option { return func(b *Bridge) { b.prompter = p } }

func New(opts ...Option) *Bridge {
	b := &Bridge{
		opener: func(string) error { return nil },
		prompter: func(string) (DialogResult, error) {
			return DialogResult{Response: 0}, nil
		},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Handle 处理单个请求帧；任何失败都落在响应的 error 字段上，不 panic
func (b *Bridge) Handle(req Request) Response {
	switch req.Method {
	case MethodGreet:
		var name string
		if err := json.Unmarshal(req.Params, &name); err != nil {
			return Response{ID: req.ID, Error: "greet: params must be a string"}
		}
		return Response{ID: req.ID, Result: fmt.Sprintf("Hello %s from the desktop shell!", name)}

	case MethodOpenExternal:
		var rawURL string
		if err := json.Unmarshal(req.Params, &rawURL); err != nil {
			return Response{ID: req.ID, Error: "open-external: params must be a string"}
		}
		u, err := url.Parse(rawURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			return Response{ID: req.ID, Error: "open-external: only http/https urls are allowed"}
		}
		if err := b.opener(rawURL); err != nil {
			return Response{ID: req.ID, Error: err.Error()}
		}
		return Response{ID: req.ID}

	case MethodShowDialog:
		var message string
		if err := json.Unmarshal(req.Params, &message); err != nil {
			return Response{ID: req.ID, Error: "show-dialog: params must be a string"}
		}
		result, err := b.prompter(message)
		if err != nil {
			return Response{ID: req.ID, Error: err.Error()}
		}
		return Response{ID: req.ID, Result: result}

	default:
		return Response{ID: req.ID, Error: fmt.Sprintf("unknown method: %s", req.Method)}
	}
}

// Serve 在一对读写流上循环服务请求（宿主典型用 stdio 管道对接）。
// 读到 EOF 正常返回；坏帧回写 error 响应后继续。
func (b *Bridge) Serve(r io.Reader, w io.Writer) error {
	var mu sync.Mutex
	enc := json.NewEncoder(w)
	write := func(resp Response) {
		mu.Lock()
		defer mu.Unlock()
		if err := enc.Encode(resp); err != nil {
			logger.Warn("bridge write failed", zap.Error(err))
		}
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var req Request
		if err := json.Unmarshal(line, &req); err != nil {
			write(Response{Error: "malformed request frame"})
			continue
		}
		write(b.Handle(req))
	}
	return scanner.Err()
}
