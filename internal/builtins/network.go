package builtins

import (
	"io"
	"net"
	"net/http"
	"strings"
	"sync"

	"github.com/rscarson/lavendeux-parser/internal/registry"
	"github.com/rscarson/lavendeux-parser/internal/state"
	"github.com/rscarson/lavendeux-parser/pkg/value"
)

func deniedNetwork(name string) error {
	return &value.ArithError{Kind: "ExtensionFailure", Message: name + " requires network access, which this state does not grant"}
}

// apiBook is the in-memory table `api_register`/`api_delete`/`api_list`
// manage, one per Register call (i.e. one per host-constructed registry),
// so two independently configured states never share registered endpoints.
type apiBook struct {
	mu   sync.Mutex
	urls map[string]string
}

func newAPIBook() *apiBook { return &apiBook{urls: map[string]string{}} }

func networkFuncs(caps *state.Capabilities) []*registry.Func {
	book := newAPIBook()
	client := &http.Client{}

	doRequest := func(method, url, body string) (value.Value, error) {
		if caps == nil || !caps.Network {
			return value.Value{}, deniedNetwork(method)
		}
		var reader io.Reader
		if body != "" {
			reader = strings.NewReader(body)
		}
		req, err := http.NewRequest(method, url, reader)
		if err != nil {
			return value.Value{}, &value.ArithError{Kind: "NetworkError", Message: err.Error()}
		}
		resp, err := client.Do(req)
		if err != nil {
			return value.Value{}, &value.ArithError{Kind: "NetworkError", Message: err.Error()}
		}
		defer resp.Body.Close()
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return value.Value{}, &value.ArithError{Kind: "NetworkError", Message: err.Error()}
		}
		return value.NewString(string(data)), nil
	}

	return []*registry.Func{
		{
			Name: "get",
			Args: []registry.ArgSpec{{Name: "url", Type: registry.ArgString}},
			Handler: func(args []value.Value) (value.Value, error) {
				return doRequest(http.MethodGet, args[0].AsString(), "")
			},
		},
		{
			Name: "post",
			Args: []registry.ArgSpec{{Name: "url", Type: registry.ArgString}, {Name: "body", Type: registry.ArgString, Optional: true}},
			Handler: func(args []value.Value) (value.Value, error) {
				body := ""
				if len(args) > 1 {
					body = args[1].AsString()
				}
				return doRequest(http.MethodPost, args[0].AsString(), body)
			},
		},
		{
			Name: "resolve",
			Args: []registry.ArgSpec{{Name: "host", Type: registry.ArgString}},
			Handler: func(args []value.Value) (value.Value, error) {
				if caps == nil || !caps.Network {
					return value.Value{}, deniedNetwork("resolve")
				}
				addrs, err := net.LookupHost(args[0].AsString())
				if err != nil {
					return value.Value{}, &value.ArithError{Kind: "NetworkError", Message: err.Error()}
				}
				out := make([]value.Value, len(addrs))
				for i, a := range addrs {
					out[i] = value.NewString(a)
				}
				return value.NewArray(out), nil
			},
		},
		{
			Name: "api_register",
			Args: []registry.ArgSpec{{Name: "name", Type: registry.ArgString}, {Name: "url", Type: registry.ArgString}},
			Handler: func(args []value.Value) (value.Value, error) {
				book.mu.Lock()
				book.urls[args[0].AsString()] = args[1].AsString()
				book.mu.Unlock()
				return value.NewBoolean(true), nil
			},
		},
		{
			Name: "api_delete",
			Args: []registry.ArgSpec{{Name: "name", Type: registry.ArgString}},
			Handler: func(args []value.Value) (value.Value, error) {
				book.mu.Lock()
				_, existed := book.urls[args[0].AsString()]
				delete(book.urls, args[0].AsString())
				book.mu.Unlock()
				return value.NewBoolean(existed), nil
			},
		},
		{
			Name: "api_list",
			Args: nil,
			Handler: func(args []value.Value) (value.Value, error) {
				book.mu.Lock()
				defer book.mu.Unlock()
				out := make([]value.Value, 0, len(book.urls))
				for name := range book.urls {
					out = append(out, value.NewString(name))
				}
				return value.NewArray(out), nil
			},
		},
		{
			Name:     "api",
			Args:     []registry.ArgSpec{{Name: "name", Type: registry.ArgString}},
			Variadic: true,
			Handler: func(args []value.Value) (value.Value, error) {
				book.mu.Lock()
				url, ok := book.urls[args[0].AsString()]
				book.mu.Unlock()
				if !ok {
					return value.Value{}, &value.ArithError{Kind: "KeyMissing", Message: "no API endpoint registered under " + args[0].AsString()}
				}
				for i, a := range args[1:] {
					url = strings.ReplaceAll(url, placeholder(i), a.String())
				}
				return doRequest(http.MethodGet, url, "")
			},
		},
	}
}

func placeholder(i int) string {
	return "{" + itoa(i) + "}"
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	digits := []byte{}
	for i > 0 {
		digits = append([]byte{byte('0' + i%10)}, digits...)
		i /= 10
	}
	return string(digits)
}
