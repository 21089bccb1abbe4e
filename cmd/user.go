package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/epoll/config"
	"github.com/s0up4200/epoll/request"
	"github.com/s0up4200/epoll/user"
)

var (
	authState      string
	accountKitCode string
	firstname      string
	lastname       string
)

// userCmd groups the account commands
var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Register, log in and show the current user",
}

var userRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account from an account-kit code",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		users, err := api.Users()
		if err != nil {
			return err
		}

		p := user.RegisterParams{
			GrantType:      cfg.Auth.GrantType,
			ClientID:       cfg.Auth.ClientID,
			ClientSecret:   optional(cfg.Auth.ClientSecret),
			State:          authState,
			AccountKitCode: accountKitCode,
			Firstname:      firstname,
			Lastname:       optional(lastname),
		}
		call, err := users.Register(p)
		if err != nil {
			return err
		}

		return login(cmd, call, "Registered")
	},
}

var userLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Exchange an account-kit code for a session token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		users, err := api.Users()
		if err != nil {
			return err
		}

		call, err := users.Authenticate(user.AuthenticateParams{
			GrantType:      cfg.Auth.GrantType,
			ClientID:       cfg.Auth.ClientID,
			ClientSecret:   optional(cfg.Auth.ClientSecret),
			State:          authState,
			AccountKitCode: accountKitCode,
		})
		if err != nil {
			return err
		}

		return login(cmd, call, "Logged in")
	},
}

var userMeCmd = &cobra.Command{
	Use:   "me",
	Short: "Show the profile of the session's user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		users, err := api.Users()
		if err != nil {
			return err
		}

		call, err := users.GetMyProfile()
		if err != nil {
			return fmt.Errorf("%w (pass --token or set session.token)", err)
		}

		resp, err := dispatch(cmd.Context(), call)
		if err != nil {
			return err
		}
		if outputFormat == outputJSON {
			return writeJSON(cmd.OutOrStdout(), resp.Body)
		}

		name := resp.Get("firstname").String()
		if last := resp.Get("lastname").String(); last != "" {
			name += " " + last
		}
		successColor.Fprintf(cmd.OutOrStdout(), "✓ %s", name)
		if id := resp.Get("id"); id.Exists() {
			detailColor.Fprintf(cmd.OutOrStdout(), " [%s]", id.String())
		}
		fmt.Fprintln(cmd.OutOrStdout())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(userCmd)
	userCmd.AddCommand(userRegisterCmd, userLoginCmd, userMeCmd)

	for _, c := range []*cobra.Command{userRegisterCmd, userLoginCmd} {
		c.Flags().StringVar(&accountKitCode, "code", "", "account-kit authorization code")
		c.Flags().StringVar(&authState, "state", "", "OAuth state echoed by the service")
		_ = c.MarkFlagRequired("code")
	}
	userRegisterCmd.Flags().StringVar(&firstname, "firstname", "", "first name")
	userRegisterCmd.Flags().StringVar(&lastname, "lastname", "", "last name")
	_ = userRegisterCmd.MarkFlagRequired("firstname")
}

// login dispatches a token request and starts a session from its response
func login(cmd *cobra.Command, call *request.Call, summary string) error {
	resp, err := dispatch(cmd.Context(), call)
	if err != nil {
		return err
	}

	var token user.LoginResponse
	if err := resp.Decode(&token); err != nil {
		return err
	}
	if token.AccessToken == "" {
		return fmt.Errorf("response carries no access token")
	}
	if token.TokenType == "" {
		token.TokenType = cfg.Session.TokenType
	}
	api.StartSession(token.TokenType, token.AccessToken)

	if outputFormat == outputJSON {
		return writeJSON(cmd.OutOrStdout(), resp.Body)
	}

	successColor.Fprintf(cmd.OutOrStdout(), "✓ %s\n", summary)
	fmt.Fprintf(cmd.OutOrStdout(), "export %s_SESSION_TOKEN_TYPE=%s\n", config.EnvPrefix, token.TokenType)
	fmt.Fprintf(cmd.OutOrStdout(), "export %s_SESSION_TOKEN=%s\n", config.EnvPrefix, token.AccessToken)
	return nil
}

// optional maps an empty string to an absent field
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return request.Ptr(s)
}
