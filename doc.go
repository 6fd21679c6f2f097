/*
Package countryflags serves country flags as inline SVG markup, keyed by
ISO 3166-1 alpha-2 country codes. Every flag of the bundled set is drawn on a
900x450 canvas and keeps its 2:1 ratio when resized.

The package provides a command line interface and a demo web page.
To check the supported commands type:

	$ countryflags --help

In case you wish to integrate the API in a self constructed environment here is a simple example:

	package main

	import (
		"context"
		"fmt"

		"github.com/esimov/countryflags"
	)

	func main() {
		ctx := context.Background()
		flags, err := countryflags.NewDefault(ctx)
		if err != nil {
			fmt.Printf("Error loading the flags: %s", err.Error())
			return
		}

		flag, ok, err := flags.Get(ctx, "US", &countryflags.SizeOptions{Width: 150})
		if err != nil || !ok {
			return
		}
		emoji, _ := countryflags.Emoji(flag.Code)
		fmt.Println(flag.Name, emoji, flag.SVG)
	}

Flags can also be read from a local directory with NewDirSource(os.DirFS(dir), ".")
or fetched on demand over HTTP with NewLazy and an HTTPSource.
*/
package countryflags
