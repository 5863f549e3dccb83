package es

import (
	"fmt"
	"io"

	"github.com/elastic/go-elasticsearch/v9"
	"go.uber.org/zap"
)

type Config struct {
	URL      string
	User     string
	Password string
}

// NewClient connects to Elasticsearch and checks the cluster answers.
func NewClient(cfg Config, l *zap.SugaredLogger) (*elasticsearch.Client, error) {
	l.Infow("es_connect", "url", cfg.URL)

	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{cfg.URL},
		Username:  cfg.User,
		Password:  cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("es: new client: %w", err)
	}

	res, err := client.Info()
	if err != nil {
		return nil, fmt.Errorf("es: info: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("es: info: %s: %s", res.Status(), body)
	}

	l.Infow("es_connected", "url", cfg.URL)
	return client, nil
}
