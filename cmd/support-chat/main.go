// Command support-chat runs the customer-support chat server and its
// maintenance subcommands.
//
//	support-chat serve     # HTTP server (default)
//	support-chat migrate   # create the interactions table
//	support-chat logs      # print recent interactions
package main

import (
	"os"

	"github.com/rs/zerolog/log"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("support-chat failed")
		os.Exit(1)
	}
}
