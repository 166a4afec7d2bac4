package main

import (
	"github.com/opticore/jwt"
	"github.com/spf13/cobra"
)

type decodeOutput struct {
	Header  map[string]any `json:"header" yaml:"header" text:"Header"`
	Payload jwt.Map        `json:"payload" yaml:"payload" text:"Payload"`
}

func NewDecodeCommand(opts *globalOptions) *cobra.Command {
	command := &cobra.Command{
		Use:   "decode TOKEN",
		Short: "Print the header and payload of a token without verifying it",
		Long: `Decodes the header and the payload of TOKEN.

Nothing is verified: neither the signature nor the claims. Use verify
before trusting any of the printed values.`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			header, payload, err := jwt.Decode(args[0])
			if err != nil {
				return err
			}
			return printOutput(c, decodeOutput{Header: header.Map(), Payload: payload}, opts.output)
		},
	}
	return command
}
