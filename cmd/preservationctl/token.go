package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	jwttoken "preservation/internal/jwt_token"
	id "preservation/pkg/domain"
)

var tokenTTL time.Duration

var issueTokenCmd = &cobra.Command{
	Use:   "issue-token <person-id>",
	Short: "Sign an access token for a person with the configured key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		personID, err := id.ParsePersonID(args[0])
		if err != nil {
			return err
		}
		if cfg.UsesDevSigningKey() {
			log.Warn("signing with the development key")
		}

		svc := jwttoken.NewJWTService(cfg.Auth.JWTSigningKey, cfg.Auth.Issuer, cfg.Auth.Audience)
		token, err := svc.GenerateAccessToken(personID, tokenTTL)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	issueTokenCmd.Flags().DurationVar(&tokenTTL, "ttl", time.Hour, "token lifetime")
	rootCmd.AddCommand(issueTokenCmd)
}
