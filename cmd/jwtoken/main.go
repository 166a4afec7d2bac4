package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/opticore/jwt"
	"github.com/opticore/jwt/internal/cmdutil"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// config is read from the environment, after an optional .env file.
// Flags of the same name win over it.
type config struct {
	Secret       string `env:"JWTOKEN_SECRET"`
	VerifySecret string `env:"JWTOKEN_VERIFY_SECRET"`
	Algorithm    string `env:"JWTOKEN_ALGORITHM" envDefault:"HS256"`
	Hash         string `env:"JWTOKEN_HASH" envDefault:"sha256"`
	LogLevel     string `env:"JWTOKEN_LOG_LEVEL" envDefault:"warning"`
	LogFormat    string `env:"JWTOKEN_LOG_FORMAT" envDefault:"text"`
}

type globalOptions struct {
	config
	envFile string
	output  string

	hash   jwt.Hash
	logger *logrus.Logger
}

// secrets returns the signing secret and the verification secret,
// the latter defaults to the former.
func (o *globalOptions) secrets() ([]byte, []byte, error) {
	if o.Secret == "" {
		return nil, nil, errors.New("a secret is required, use --secret or JWTOKEN_SECRET")
	}
	verifySecret := o.VerifySecret
	if verifySecret == "" {
		verifySecret = o.Secret
	}
	return []byte(o.Secret), []byte(verifySecret), nil
}

func loadConfig(envFile string) (config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return config{}, fmt.Errorf("could not load %s: %w", envFile, err)
		}
	} else {
		_ = godotenv.Load() // .env is optional.
	}

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		return config{}, err
	}
	return cfg, nil
}

// exitError carries the process exit code of a command that ran fine
// but whose outcome is negative, e.g. an invalid token.
type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string { return e.msg }

// NewRootCommand returns a new root command.
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	command := &cobra.Command{
		Use:   "jwtoken",
		Short: "Sign, verify and refresh HMAC JSON web tokens",
		Long: `jwtoken signs, verifies, refreshes and decodes HMAC JSON web tokens.

Secrets and defaults are read from the environment (JWTOKEN_SECRET,
JWTOKEN_VERIFY_SECRET, JWTOKEN_ALGORITHM, JWTOKEN_HASH, JWTOKEN_LOG_LEVEL,
JWTOKEN_LOG_FORMAT), after loading an optional .env file.`,
		SilenceUsage: true,
		PersistentPreRunE: func(c *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts.envFile)
			if err != nil {
				return err
			}
			flags := c.Flags()
			override := func(name string, dst *string, value string) {
				if !flags.Changed(name) {
					*dst = value
				}
			}
			override("secret", &opts.Secret, cfg.Secret)
			override("verify-secret", &opts.VerifySecret, cfg.VerifySecret)
			override("algorithm", &opts.Algorithm, cfg.Algorithm)
			override("hash", &opts.Hash, cfg.Hash)
			override("log-level", &opts.LogLevel, cfg.LogLevel)
			override("log-format", &opts.LogFormat, cfg.LogFormat)

			opts.logger, err = cmdutil.CreateLogger(opts.LogLevel, opts.LogFormat, c.ErrOrStderr(), c.ErrOrStderr())
			if err != nil {
				return err
			}
			jwt.SetLogger(opts.logger)

			opts.hash, err = jwt.ParseHash(opts.Hash)
			return err
		},
		Run: func(c *cobra.Command, args []string) {
			_ = c.Help()
		},
	}

	pf := command.PersistentFlags()
	pf.StringVar(&opts.Secret, "secret", "", "Signing secret (env JWTOKEN_SECRET)")
	pf.StringVar(&opts.VerifySecret, "verify-secret", "", "Verification secret, defaults to the signing secret (env JWTOKEN_VERIFY_SECRET)")
	pf.StringVar(&opts.Algorithm, "algorithm", "", "Header algorithm (env JWTOKEN_ALGORITHM, default HS256)")
	pf.StringVar(&opts.Hash, "hash", "", "HMAC digest, one of "+fmt.Sprint(jwt.Hashes())+" (env JWTOKEN_HASH, default sha256)")
	pf.StringVar(&opts.LogLevel, "log-level", "", "Log level, one of "+cmdutil.AvailableLogLevels()+" (env JWTOKEN_LOG_LEVEL)")
	pf.StringVar(&opts.LogFormat, "log-format", "", "Log format, one of text, json (env JWTOKEN_LOG_FORMAT)")
	pf.StringVar(&opts.envFile, "env-file", "", "Load the environment from this file instead of ./.env")
	pf.StringVarP(&opts.output, "output", "o", "text", "Output format. One of: text, yaml, json")

	command.AddCommand(NewSignCommand(opts))
	command.AddCommand(NewVerifyCommand(opts))
	command.AddCommand(NewRefreshCommand(opts))
	command.AddCommand(NewDecodeCommand(opts))
	command.AddCommand(NewVersionCommand())

	return command
}

func execute(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SilenceErrors = true

	return cmd.Execute()
}

// exitCode maps the error of execute to the process exit code.
func exitCode(err error) int {
	if err == nil {
		return 0
	}

	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}
	return 1
}

func main() {
	err := execute(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	if err == nil {
		return
	}

	code := exitCode(err)
	if err.Error() == "" {
		// The outcome was already printed, e.g. an invalid token.
		os.Exit(code)
	}
	cmdutil.FatalWithExitCode(code, "%v", err)
}
