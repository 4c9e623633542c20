package main

import (
	"fmt"
	"io"
	"time"

	"github.com/go-resty/resty/v2"
)

func newClient(apiURL string) *resty.Client {
	return resty.New().
		SetBaseURL(apiURL).
		SetHeader("Content-Type", "application/json").
		SetTimeout(2 * time.Minute)
}

func writeBody(out io.Writer, resp *resty.Response) error {
	if !resp.IsSuccess() {
		return fmt.Errorf("http %d: %s", resp.StatusCode(), resp.String())
	}
	_, err := fmt.Fprintln(out, resp.String())
	return err
}

func runHealth(apiURL string, out io.Writer) error {
	resp, err := newClient(apiURL).R().Get("/health")
	if err != nil {
		return err
	}
	return writeBody(out, resp)
}

func runEmbed(apiURL, text string, out io.Writer) error {
	resp, err := newClient(apiURL).R().
		SetBody(map[string]string{"text": text}).
		Post("/embed")
	if err != nil {
		return err
	}
	return writeBody(out, resp)
}

func runBatch(apiURL string, texts []string, out io.Writer) error {
	resp, err := newClient(apiURL).R().
		SetBody(map[string][]string{"texts": texts}).
		Post("/embed/batch")
	if err != nil {
		return err
	}
	return writeBody(out, resp)
}

func runInfo(apiURL string, out io.Writer) error {
	resp, err := newClient(apiURL).R().Get("/models/info")
	if err != nil {
		return err
	}
	return writeBody(out, resp)
}
