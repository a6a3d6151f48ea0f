package builtins

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"math/rand"
	"net/url"

	"github.com/rscarson/lavendeux-parser/internal/registry"
	"github.com/rscarson/lavendeux-parser/pkg/value"
)

func cryptoFuncs() []*registry.Func {
	return []*registry.Func{
		{
			Name: "md5",
			Args: []registry.ArgSpec{{Name: "s", Type: registry.ArgString}},
			Handler: func(args []value.Value) (value.Value, error) {
				sum := md5.Sum([]byte(args[0].AsString()))
				return value.NewString(hex.EncodeToString(sum[:])), nil
			},
		},
		{
			Name: "sha256",
			Args: []registry.ArgSpec{{Name: "s", Type: registry.ArgString}},
			Handler: func(args []value.Value) (value.Value, error) {
				sum := sha256.Sum256([]byte(args[0].AsString()))
				return value.NewString(hex.EncodeToString(sum[:])), nil
			},
		},
		{
			Name: "atob",
			Args: []registry.ArgSpec{{Name: "s", Type: registry.ArgString}},
			Handler: func(args []value.Value) (value.Value, error) {
				out, err := base64.StdEncoding.DecodeString(args[0].AsString())
				if err != nil {
					return value.Value{}, &value.ArithError{Kind: "ArgumentType", Message: "invalid base64: " + err.Error()}
				}
				return value.NewString(string(out)), nil
			},
		},
		{
			Name: "btoa",
			Args: []registry.ArgSpec{{Name: "s", Type: registry.ArgString}},
			Handler: func(args []value.Value) (value.Value, error) {
				return value.NewString(base64.StdEncoding.EncodeToString([]byte(args[0].AsString()))), nil
			},
		},
		{
			Name: "urlencode",
			Args: []registry.ArgSpec{{Name: "s", Type: registry.ArgString}},
			Handler: func(args []value.Value) (value.Value, error) {
				return value.NewString(url.QueryEscape(args[0].AsString())), nil
			},
		},
		{
			Name: "urldecode",
			Args: []registry.ArgSpec{{Name: "s", Type: registry.ArgString}},
			Handler: func(args []value.Value) (value.Value, error) {
				out, err := url.QueryUnescape(args[0].AsString())
				if err != nil {
					return value.Value{}, &value.ArithError{Kind: "ArgumentType", Message: "invalid URL encoding: " + err.Error()}
				}
				return value.NewString(out), nil
			},
		},
		{
			Name:     "choose",
			Args:     []registry.ArgSpec{{Name: "x", Type: registry.Any}, {Name: "y", Type: registry.Any}},
			Variadic: true,
			Handler: func(args []value.Value) (value.Value, error) {
				return args[rand.Intn(len(args))], nil
			},
		},
		{
			Name: "rand",
			Args: []registry.ArgSpec{
				{Name: "min", Type: registry.ArgInteger, Optional: true},
				{Name: "max", Type: registry.ArgInteger, Optional: true},
			},
			Handler: func(args []value.Value) (value.Value, error) {
				if len(args) == 0 {
					return value.NewFloat(rand.Float64()), nil
				}
				if len(args) == 1 {
					return value.Value{}, &registry.ArityError{Name: "rand", Got: 1, Min: 0, Max: 2}
				}
				lo, hi := args[0].AsInt(), args[1].AsInt()
				if hi < lo {
					return value.Value{}, &value.ArithError{Kind: "ArgumentType", Message: "rand: max must be >= min"}
				}
				return value.NewInteger(lo + rand.Int63n(hi-lo+1)), nil
			},
		},
	}
}
