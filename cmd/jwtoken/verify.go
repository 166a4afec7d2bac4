package main

import (
	"github.com/opticore/jwt"
	"github.com/spf13/cobra"
)

// Exit codes of the verify command.
const (
	exitInvalid = 1
	exitExpired = 2
)

type verifyOutput struct {
	Status  string  `json:"status" yaml:"status" text:"Status"`
	Reason  string  `json:"reason,omitempty" yaml:"reason,omitempty" text:"Reason,omitempty"`
	Message string  `json:"message,omitempty" yaml:"message,omitempty" text:"Message,omitempty"`
	Payload jwt.Map `json:"payload,omitempty" yaml:"payload,omitempty" text:"Payload,omitempty"`
}

func newVerifyOutput(result *jwt.VerifyResult) verifyOutput {
	out := verifyOutput{
		Status:  result.Status.String(),
		Message: result.Message,
		Payload: result.Payload,
	}
	if result.Kind != jwt.KindNone {
		out.Reason = result.Kind.String()
	}
	return out
}

type verifyFlags struct {
	optionsFile    string
	algorithm      string
	audience       []string
	subject        string
	issuer         string
	jwtID          string
	maxAge         string
	clockTolerance int64
	encoding       string
}

func (f *verifyFlags) register(c *cobra.Command) {
	c.Flags().StringVar(&f.optionsFile, "verify-options", "", "YAML or JSON file of verify options")
	c.Flags().StringVar(&f.algorithm, "expect-algorithm", "", "Reject tokens whose header algorithm differs")
	c.Flags().StringSliceVar(&f.audience, "expect-audience", nil, "Accepted audiences, any of them matches")
	c.Flags().StringVar(&f.subject, "expect-subject", "", "Expected subject claim")
	c.Flags().StringVar(&f.issuer, "expect-issuer", "", "Expected issuer claim")
	c.Flags().StringVar(&f.jwtID, "expect-jwt-id", "", "Expected token id claim")
	c.Flags().StringVar(&f.maxAge, "max-age", "", `Reject tokens issued longer ago, e.g. "1h"`)
	c.Flags().Int64Var(&f.clockTolerance, "clock-tolerance", 0, `Seconds of slack on "exp" and "nbf"`)
	c.Flags().StringVar(&f.encoding, "verify-encoding", "", "Signature encoding, one of base64, base64url, hex, latin1")
}

func (f *verifyFlags) options(c *cobra.Command) (jwt.VerifyOptions, error) {
	verifyOpts, err := readVerifyOptions(f.optionsFile, c.InOrStdin())
	if err != nil {
		return verifyOpts, err
	}

	flags := c.Flags()
	if flags.Changed("expect-algorithm") {
		verifyOpts.Algorithm = f.algorithm
	}
	if flags.Changed("expect-audience") {
		verifyOpts.Audience = f.audience
	}
	if flags.Changed("expect-subject") {
		verifyOpts.Subject = f.subject
	}
	if flags.Changed("expect-issuer") {
		verifyOpts.Issuer = f.issuer
	}
	if flags.Changed("expect-jwt-id") {
		verifyOpts.JWTID = f.jwtID
	}
	if flags.Changed("max-age") {
		verifyOpts.MaxAge = durationFlag(f.maxAge)
	}
	if flags.Changed("clock-tolerance") {
		verifyOpts.ClockTolerance = f.clockTolerance
	}
	if flags.Changed("verify-encoding") {
		verifyOpts.Encoding = jwt.Encoding(f.encoding)
	}
	return verifyOpts, nil
}

func NewVerifyCommand(opts *globalOptions) *cobra.Command {
	var vf verifyFlags
	command := &cobra.Command{
		Use:   "verify TOKEN",
		Short: "Verify a token and print its payload",
		Long: `Verifies the signature and the claims of TOKEN.

The command exits with 0 when the token is valid, 2 when it is
authentic but expired and 1 otherwise.`,
		Example: `  jwtoken verify "$TOKEN" --expect-issuer my-issuer --max-age 1h -o yaml`,
		Args:    cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			_, verifySecret, err := opts.secrets()
			if err != nil {
				return err
			}

			verifyOpts, err := vf.options(c)
			if err != nil {
				return err
			}

			result, err := jwt.Verify(args[0], verifySecret, opts.hash, verifyOpts)
			if err != nil {
				return err
			}

			if err = printOutput(c, newVerifyOutput(result), opts.output); err != nil {
				return err
			}

			switch result.Status {
			case jwt.StatusValid:
				return nil
			case jwt.StatusExpired:
				return &exitError{code: exitExpired}
			default:
				return &exitError{code: exitInvalid}
			}
		},
	}

	vf.register(command)
	return command
}
