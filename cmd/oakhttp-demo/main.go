// Command oakhttp-demo wires up a small showcase server: ping, header
// and query echo, cookie set/get, and a static file directory.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"oakhttp.dev/go/server/internal/obs"
	"oakhttp.dev/go/server/oakhttp"
	"oakhttp.dev/go/server/oakhttp/handlers"
)

func main() {
	srv := oakhttp.NewServer("localhost", 2300)
	srv.Logger = obs.ZerologLogger{L: zerolog.New(os.Stderr).With().Timestamp().Logger()}

	srv.On("/ping", func(_ *oakhttp.Request, resp *oakhttp.Response) error {
		return resp.EndWith("Pong!")
	})

	srv.OnGet("/headers", func(req *oakhttp.Request, resp *oakhttp.Response) error {
		if err := resp.SendString("Your browser sent the following headers:\n"); err != nil {
			return err
		}
		var err error
		req.Headers.Each(func(name, value string) {
			if err == nil {
				err = resp.SendString(fmt.Sprintf("%s: %s\n", name, value))
			}
		})
		if err != nil {
			return err
		}
		return resp.End()
	})

	srv.On("/test", func(req *oakhttp.Request, resp *oakhttp.Response) error {
		if err := resp.SendString("Your current query options are:\n"); err != nil {
			return err
		}
		for name, value := range req.Target.Queries {
			if err := resp.SendString(fmt.Sprintf("%s: %s\n", name, value)); err != nil {
				return err
			}
		}
		return resp.End()
	})

	srv.On("/set-cookies", func(req *oakhttp.Request, resp *oakhttp.Response) error {
		for name, value := range req.Target.Queries {
			c := oakhttp.NewCookie(name, value)
			c.Expires = time.Now().Add(time.Hour)
			if err := resp.SetCookie(c); err != nil {
				return err
			}
		}
		return resp.EndWith("cookies set\n")
	})

	srv.On("/get-cookies", func(req *oakhttp.Request, resp *oakhttp.Response) error {
		if err := resp.SendString("Your cookies are:\n"); err != nil {
			return err
		}
		for name, c := range req.Cookies {
			if err := resp.SendString(fmt.Sprintf("%s: %s\n", name, c.Value)); err != nil {
				return err
			}
		}
		return resp.End()
	})

	srv.OnDirectory("/www", handlers.ServeSameDir)

	if err := srv.ListenAndServe(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
