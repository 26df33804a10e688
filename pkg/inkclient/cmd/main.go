package main

import (
	"context"
	"log"
	"net/url"
	"os"

	"github.com/joho/godotenv"
	"github.com/k0kubun/pp"
	"resty.dev/v3"

	"inkwell/pkg/inkclient"
)

func main() {
	_ = godotenv.Load()

	baseURL := os.Getenv("INKWELL_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	client := inkclient.NewClient(baseURL, &inkclient.ClientConfig{
		TransportSettings: inkclient.DefaultConfig.TransportSettings,

		ResponseMiddlewares: []resty.ResponseMiddleware{func(client *resty.Client, response *resty.Response) error {
			reqURL, err := url.Parse(response.Request.URL)
			if err != nil {
				return err
			}

			log.Printf("%s %s: %s [%s]", response.Request.Method, reqURL.Path, response.Status(), response.Duration())
			return nil
		}},
	})
	defer client.Close()

	ctx := context.Background()

	posts, err := client.ListPosts(ctx, "")
	if err != nil {
		panic(err)
	}
	pp.Printf("%+v\n", posts)

	token := os.Getenv("INKWELL_TOKEN")
	if token == "" {
		return
	}

	dashboard, err := client.WithToken(token).Dashboard(ctx)
	if err != nil {
		panic(err)
	}
	pp.Printf("%+v\n", dashboard)
}
