package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/salesqa/callcheck/analysis"
)

// --- NLP (/annotate) ---
type AnnotateReq struct {
	Text string `json:"text"`
}
type AnnotateResp struct {
	Tokens []analysis.Token `json:"tokens"`
	Spans  []analysis.Span  `json:"spans"`
}

// Annotate sends text to the annotation service and returns its tokens.
// Blank text is not sent. Transport errors and 5xx answers are retried with
// Fibonacci backoff until the call's timeout runs out.
func (h *HTTP) Annotate(ctx context.Context, url, text string) (*AnnotateResp, error) {
	if strings.TrimSpace(text) == "" {
		return &AnnotateResp{}, nil
	}
	payload, err := json.Marshal(AnnotateReq{Text: text})
	if err != nil {
		return nil, fmt.Errorf("annotate marshal: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	var out AnnotateResp
	b := retry.WithMaxRetries(uint64(h.retries), retry.NewFibonacci(100*time.Millisecond))
	err = retry.Do(ctx, b, func(ctx context.Context) error {
		out = AnnotateResp{}
		return h.annotateOnce(ctx, url, payload, &out)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (h *HTTP) annotateOnce(ctx context.Context, url string, payload []byte, out *AnnotateResp) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url+"/annotate", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.c.Do(req)
	if err != nil {
		return retry.RetryableError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		err := fmt.Errorf("annotate %s: %s", resp.Status, strings.TrimSpace(string(body)))
		if resp.StatusCode >= 500 {
			return retry.RetryableError(err)
		}
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("annotate decode: %w", err)
	}
	return nil
}

// NLP binds the client to one annotation service URL.
type NLP struct {
	h   *HTTP
	url string
}

func (h *HTTP) NLP(url string) *NLP {
	return &NLP{h: h, url: strings.TrimRight(url, "/")}
}

// Annotate returns the token sequence for text.
func (n *NLP) Annotate(ctx context.Context, text string) ([]analysis.Token, error) {
	resp, err := n.h.Annotate(ctx, n.url, text)
	if err != nil {
		return nil, err
	}
	return resp.Tokens, nil
}
