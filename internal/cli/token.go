package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/queue-backend/internal/auth"
)

type tokenOptions struct {
	User   string
	Secret string
	Issuer string
	TTL    time.Duration
}

func addToken(topLevel *cobra.Command) {
	o := &tokenOptions{}
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an API access token for a user.",
		Long:  "Issue an API access token for a user. The secret defaults to $AUTH_JWT_SECRET.",
		Example: `
queuectl token --user 5f0c7a8e-3c1b-4d0e-9b7a-1f2e3d4c5b6a
queuectl token --user $(uuidgen) --ttl 1h
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			token, err := o.issue()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}
	cmd.Flags().StringVar(&o.User, "user", "", "User id (uuid) to put in the token subject.")
	cmd.Flags().StringVar(&o.Secret, "secret", os.Getenv("AUTH_JWT_SECRET"), "HS256 signing secret, at least 32 characters.")
	cmd.Flags().StringVar(&o.Issuer, "issuer", envOr("AUTH_JWT_ISSUER", "queue"), "Token issuer.")
	cmd.Flags().DurationVar(&o.TTL, "ttl", 12*time.Hour, "Token lifetime.")
	_ = cmd.MarkFlagRequired("user")

	topLevel.AddCommand(cmd)
}

func (o *tokenOptions) issue() (string, error) {
	userID, err := uuid.Parse(o.User)
	if err != nil {
		return "", fmt.Errorf("--user: %w", err)
	}
	if len(o.Secret) < 32 {
		return "", fmt.Errorf("--secret must be at least 32 characters (got %d)", len(o.Secret))
	}
	if o.TTL <= 0 {
		return "", fmt.Errorf("--ttl must be positive")
	}
	return auth.NewJWTManager(o.Secret, o.Issuer, o.TTL).GenerateAccessToken(userID)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
