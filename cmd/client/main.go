// Package main is a command-line client that requests passwords from a
// passgen server and prints one per line.
package main

import (
	"cmp"
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/atinyakov/passgen/internal/client"
	"github.com/atinyakov/passgen/internal/models"
)

var (
	version   string
	buildDate string
)

// main parses command-line flags and requests passwords.
func main() {
	var (
		baseURL string
		caFile  string
		req     models.GenerateRequest
		ping    bool
		showVer bool
	)

	flag.StringVar(&baseURL, "url", "http://localhost:8080", "server base URL")
	flag.StringVar(&caFile, "ca", "", "path to CA cert for HTTPS servers")
	flag.IntVar(&req.Length, "length", 12, "password length")
	flag.BoolVar(&req.Digits, "digits", false, "include digits (0-9)")
	flag.BoolVar(&req.LowerCase, "lower", false, "include lowercase letters")
	flag.BoolVar(&req.UpperCase, "upper", false, "include uppercase letters")
	flag.IntVar(&req.Count, "count", 1, "number of passwords to generate")
	flag.BoolVar(&ping, "ping", false, "print the server version and exit")
	flag.BoolVar(&showVer, "version", false, "show build version and date")
	flag.Parse()

	if showVer {
		fmt.Printf("passgen client\nVersion: %s\nBuild Date: %s\n", cmp.Or(version, "N/A"), cmp.Or(buildDate, "N/A"))
		return
	}

	httpClient, err := client.NewHTTPClient(caFile)
	if err != nil {
		log.Fatal(err)
	}
	c := client.New(baseURL, httpClient)
	ctx := context.Background()

	if ping {
		v, err := c.Ping(ctx)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(v)
		return
	}

	passwords, err := c.Generate(ctx, req)
	if err != nil {
		log.Fatal(err)
	}
	for _, pw := range passwords {
		fmt.Println(pw)
	}
}
