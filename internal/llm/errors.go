package llm

import "fmt"

type ErrUnsupportedProvider struct {
	Provider string
}

func (e ErrUnsupportedProvider) Error() string {
	return fmt.Sprintf("unsupported LLM provider: %s", e.Provider)
}

// UpstreamError reports a non-success response from the completion API,
// keeping the upstream status so handlers can attach it to their reply.
type UpstreamError struct {
	Service string
	Status  int
	Detail  string
}

func (e *UpstreamError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s request failed: status %d", e.Service, e.Status)
	}
	return fmt.Sprintf("%s request failed: status %d: %s", e.Service, e.Status, e.Detail)
}
