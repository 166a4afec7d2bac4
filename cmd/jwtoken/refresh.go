package main

import (
	"github.com/opticore/jwt"
	"github.com/spf13/cobra"
)

func NewRefreshCommand(opts *globalOptions) *cobra.Command {
	var (
		vf          verifyFlags
		signOptions string
		expiresAt   int64
		ttl         string
	)
	command := &cobra.Command{
		Use:   "refresh TOKEN",
		Short: "Sign a new token out of an expired one",
		Long: `Verifies TOKEN with the verification secret and, only when it is
authentic but expired, signs a new token with the signing secret.

The new token keeps every claim but "exp", which is set by --expires-at,
--ttl, or defaults to one hour from now. A token that is still valid or
that is invalid is not refreshed and the command exits with 1.`,
		Example: `  jwtoken refresh "$TOKEN" --ttl 30m
  JWTOKEN_VERIFY_SECRET=old jwtoken refresh "$TOKEN" --secret new`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			secret, verifySecret, err := opts.secrets()
			if err != nil {
				return err
			}

			verifyOpts, err := vf.options(c)
			if err != nil {
				return err
			}

			signOpts, err := readSignOptions(signOptions, c.InOrStdin())
			if err != nil {
				return err
			}

			if c.Flags().Changed("ttl") {
				secs, err := durationFlag(ttl).Seconds()
				if err != nil {
					return err
				}
				expiresAt = jwt.Clock().Unix() + secs
			}

			token, err := jwt.Refresh(args[0], secret, verifySecret, opts.Algorithm, opts.hash, signOpts, verifyOpts, expiresAt)
			if err != nil {
				return err
			}
			if token == "" {
				return &exitError{code: exitInvalid, msg: "token not refreshed: it is either still valid or not trusted"}
			}

			opts.logger.Debug("Token refreshed")
			return printOutput(c, signOutput{Token: token}, opts.output)
		},
	}

	vf.register(command)
	command.Flags().StringVar(&signOptions, "sign-options", "", "YAML or JSON file of sign options for the new token")
	command.Flags().Int64Var(&expiresAt, "expires-at", 0, `Unix time of the new "exp"`)
	command.Flags().StringVar(&ttl, "ttl", "", `Lifetime of the new token, e.g. "30m"`)
	command.MarkFlagsMutuallyExclusive("expires-at", "ttl")
	return command
}
