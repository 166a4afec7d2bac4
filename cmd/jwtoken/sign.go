package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/opticore/jwt"
	"github.com/opticore/jwt/internal/cmdutil"
	"github.com/spf13/cobra"
)

type signOutput struct {
	Token string `json:"token" yaml:"token" text:"Token"`
}

func NewSignCommand(opts *globalOptions) *cobra.Command {
	var (
		payloadFile string
		optionsFile string
		expiresIn   string
		notBefore   string
		audience    []string
		subject     string
		issuer      string
		jwtID       string
		keyID       string
		encoding    string
		noTimestamp bool
	)
	command := &cobra.Command{
		Use:   "sign [PAYLOAD]",
		Short: "Sign a new token",
		Long: `Signs a new token for the JSON object PAYLOAD, or the one read with --payload.

Options are read from the YAML or JSON document given with --options
("expiresIn", "audience", "jwtId", ...), the flags win over it.
Use --jwt-id auto to generate a random token id.`,
		Example: `  jwtoken sign '{"user_id":42}' --expires-in 15m --issuer my-issuer
  echo '{"user_id":42}' | jwtoken sign --payload - --options sign.yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			secret, _, err := opts.secrets()
			if err != nil {
				return err
			}

			payload, err := readPayload(args, payloadFile, c.InOrStdin())
			if err != nil {
				return err
			}

			signOpts, err := readSignOptions(optionsFile, c.InOrStdin())
			if err != nil {
				return err
			}

			flags := c.Flags()
			if flags.Changed("expires-in") {
				signOpts.ExpiresIn = durationFlag(expiresIn)
			}
			if flags.Changed("not-before") {
				signOpts.NotBefore = durationFlag(notBefore)
			}
			if flags.Changed("audience") {
				signOpts.Audience = audience
			}
			if flags.Changed("subject") {
				signOpts.Subject = subject
			}
			if flags.Changed("issuer") {
				signOpts.Issuer = issuer
			}
			if flags.Changed("jwt-id") {
				if strings.EqualFold(jwtID, "auto") {
					jwtID = uuid.NewString()
				}
				signOpts.JWTID = jwtID
			}
			if flags.Changed("kid") {
				if signOpts.Header == nil {
					signOpts.Header = &jwt.Header{}
				}
				signOpts.Header.KeyID = keyID
			}
			if flags.Changed("encoding") {
				signOpts.Encoding = jwt.Encoding(encoding)
			}
			if flags.Changed("no-timestamp") {
				signOpts.NoTimestamp = noTimestamp
			}

			if !jwt.KnownAlgorithm(opts.Algorithm) {
				opts.logger.WithField("alg", opts.Algorithm).Warn("Unregistered header algorithm")
			}

			token, err := jwt.Sign(payload, secret, opts.Algorithm, opts.hash, signOpts)
			if err != nil {
				return err
			}

			opts.logger.WithField("alg", opts.Algorithm).Debug("Token signed")
			return printOutput(c, signOutput{Token: token}, opts.output)
		},
	}

	command.Flags().StringVar(&payloadFile, "payload", "", "Read the payload from this file, - for the standard input")
	command.Flags().StringVar(&optionsFile, "options", "", "YAML or JSON file of sign options")
	command.Flags().StringVar(&expiresIn, "expires-in", "", `Token lifetime, e.g. "15m" or a number of seconds`)
	command.Flags().StringVar(&notBefore, "not-before", "", `Delay before the token is active, e.g. "10s"`)
	command.Flags().StringSliceVar(&audience, "audience", nil, "Audience, repeat or separate with commas for several")
	command.Flags().StringVar(&subject, "subject", "", "Subject claim")
	command.Flags().StringVar(&issuer, "issuer", "", "Issuer claim")
	command.Flags().StringVar(&jwtID, "jwt-id", "", `Token id claim, "auto" generates one`)
	command.Flags().StringVar(&keyID, "kid", "", "Key id header")
	command.Flags().StringVar(&encoding, "encoding", "", "Signature encoding, one of base64, base64url, hex, latin1")
	command.Flags().BoolVar(&noTimestamp, "no-timestamp", false, `Omit the "iat" claim`)
	return command
}

func readPayload(args []string, payloadFile string, stdin io.Reader) (jwt.Map, error) {
	var raw []byte
	switch {
	case len(args) == 1:
		raw = []byte(args[0])
	case payloadFile != "":
		m, err := readDocument(payloadFile, stdin)
		if err != nil {
			return nil, err
		}
		return m, nil
	default:
		return jwt.Map{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var payload jwt.Map
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("payload must be a JSON object: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("payload must be a single JSON object")
	}
	if payload == nil {
		return nil, fmt.Errorf("payload must be a JSON object")
	}
	return payload, nil
}

func printOutput(c *cobra.Command, v any, format string) error {
	if format == "text" {
		if s, ok := v.(signOutput); ok {
			_, err := fmt.Fprintln(c.OutOrStdout(), s.Token)
			return err
		}
	}

	out, err := cmdutil.MarshalStruct(v, format)
	if err != nil {
		return err
	}
	_, err = c.OutOrStdout().Write(out)
	return err
}
