package umamidomain

import (
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
)

func jsonUnmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// ErrorKind classifica as falhas na comunicação com o Umami
type ErrorKind string

const (
	// KindAuth indica falha no login ou token recusado
	KindAuth ErrorKind = "auth"
	// KindFetch indica falha de rede ou status não-2xx
	KindFetch ErrorKind = "fetch"
	// KindMalformed indica JSON com formato inesperado
	KindMalformed ErrorKind = "malformed"
)

// UpstreamError é um erro tipado de integração com o Umami. O handler de
// métricas loga o tipo internamente mas responde sempre o erro genérico.
type UpstreamError struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("umami %s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// NewAuthError cria um erro de autenticação com o Umami
func NewAuthError(op string, err error) error {
	return &UpstreamError{Kind: KindAuth, Op: op, Err: err}
}

// NewFetchError cria um erro de rede ou status inesperado
func NewFetchError(op string, err error) error {
	return &UpstreamError{Kind: KindFetch, Op: op, Err: err}
}

// NewMalformedError cria um erro de resposta com formato inesperado
func NewMalformedError(op string, err error) error {
	return &UpstreamError{Kind: KindMalformed, Op: op, Err: err}
}

// KindOf retorna o tipo da falha, ou KindFetch quando o erro não é tipado
func KindOf(err error) ErrorKind {
	var upstream *UpstreamError
	if errors.As(err, &upstream) {
		return upstream.Kind
	}
	return KindFetch
}
