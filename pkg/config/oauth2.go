package config

import (
	"context"
	"fmt"

	"golang.org/x/oauth2/clientcredentials"
)

// ResolveOAuth2 acquires a client-credentials token for every environment
// that declares an [environments.<name>.oauth2] table and folds it into
// that environment's headers as a Bearer header, once per run — before any
// route executes. Grounded on the teacher's OAuth2Tool.clientCredentialsFlow
// (pkg/core/tools/shared/auth.go), minus the variable-store bookkeeping that
// only makes sense inside an interactive agent.
func ResolveOAuth2(ctx context.Context, cfg *Config) error {
	for name, env := range cfg.Environments {
		if env.OAuth2 == nil {
			continue
		}

		oauthCfg := clientcredentials.Config{
			ClientID:     env.OAuth2.ClientID,
			ClientSecret: env.OAuth2.ClientSecret,
			TokenURL:     env.OAuth2.TokenURL,
			Scopes:       env.OAuth2.Scopes,
		}

		token, err := oauthCfg.Token(ctx)
		if err != nil {
			return fmt.Errorf("config: oauth2 client_credentials flow failed for environment %q: %w", name, err)
		}

		headerName := env.OAuth2.HeaderName
		if headerName == "" {
			headerName = "Authorization"
		}

		if env.Headers == nil {
			env.Headers = make(map[string]string, 1)
		}
		env.Headers[headerName] = fmt.Sprintf("%s %s", token.TokenType, token.AccessToken)
		cfg.Environments[name] = env
	}

	return nil
}
