package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	"xscraper/pkg/auth"
	"xscraper/pkg/config"
	"xscraper/pkg/twitter"
	"xscraper/pkg/ui"
)

// authCmd represents the auth command
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage X API credentials",
	Long: `Manage stored X API credentials securely.

Credentials are stored using:
  - System keychain (when available)
  - Encrypted file with PBKDF2 key derivation
  - Environment variables (read-only fallback)

Never share your bearer token or config files!`,
}

// loginCmd represents the auth login command
var loginCmd = &cobra.Command{
	Use:   "login [label]",
	Short: "Store an API bearer token securely",
	Long: `Store an X API bearer token in the system keychain or encrypted file.

You will be prompted for:
  - Account label (if not provided; press Enter for 'default')
  - Bearer token (from the developer portal)
  - OAuth 1.0a keys (optional)

To get a bearer token:
1. Sign in at https://developer.twitter.com
2. Create a Project and an App inside it
3. Open the App's 'Keys and tokens' tab
4. Generate the Bearer Token and copy it`,
	Example: `  # Interactive login
  xscraper auth login

  # Store under a named label
  xscraper auth login work`,
	Args: cobra.MaximumNArgs(1),
	Run:  runLogin,
}

// removeCmd represents the auth remove command
var removeCmd = &cobra.Command{
	Use:   "remove [label]",
	Short: "Remove stored credentials",
	Long: `Remove stored X API credentials.

If no label is provided, you will be shown a list of stored accounts
to choose from. You can also remove all accounts at once.`,
	Example: `  # Interactive removal
  xscraper auth remove

  # Remove a specific account
  xscraper auth remove work`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRemove,
}

// listCmd represents the auth list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all stored accounts",
	Long:  `List all stored accounts with sanitized credential information.`,
	Run:   runList,
}

// testCmd represents the auth test command
var testCmd = &cobra.Command{
	Use:   "test [label]",
	Short: "Verify stored credentials against the API",
	Long: `Make a minimal read request to the X API with the stored bearer token
and report whether it is accepted.

If no label is provided, the default account is tested.`,
	Example: `  # Test the default account
  xscraper auth test

  # Test a specific account
  xscraper auth test work`,
	Args: cobra.MaximumNArgs(1),
	Run:  runTest,
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(loginCmd)
	authCmd.AddCommand(removeCmd)
	authCmd.AddCommand(listCmd)
	authCmd.AddCommand(testCmd)
}

func runLogin(cmd *cobra.Command, args []string) {
	manager, err := auth.NewManager()
	if err != nil {
		ui.PrintError("Failed to initialize credential manager: %v", err)
		os.Exit(1)
	}

	var label string
	if len(args) > 0 {
		label = args[0]
	}

	// Interactive prompts
	reader := bufio.NewReader(os.Stdin)

	// Show the portal walkthrough first
	auth.ShowBearerTokenGuide()

	// Ask if ready to continue
	fmt.Print("Ready to enter your bearer token? (Y/n): ")
	ready, _ := reader.ReadString('\n')
	if strings.ToLower(strings.TrimSpace(ready)) == "n" {
		fmt.Println("\nRun 'xscraper auth login' when you're ready.")
		return
	}

	fmt.Println() // Add spacing

	if label == "" {
		fmt.Print("🏷️  Account label (press Enter for 'default'): ")
		input, err := reader.ReadString('\n')
		if err != nil {
			ui.PrintError("Failed to read label: %v", err)
			os.Exit(1)
		}
		label = strings.TrimSpace(input)
		if label == "" {
			label = "default"
		}
	}

	// Check if account already exists
	if existing, _ := manager.Retrieve(label); existing != nil {
		fmt.Printf("\n⚠️  Account '%s' already exists. Update credentials? (y/N): ", label)
		input, _ := reader.ReadString('\n')
		if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(input)), "y") {
			return
		}
	}

	fmt.Println("\n🔐 Enter your token (it will be hidden as you type):")
	fmt.Println()

	// Get bearer token with validation
	var bearerToken string
	for {
		fmt.Printf("bearer token: ")
		bearerToken, err = readPassword()
		if err != nil {
			ui.PrintError("Failed to read bearer token: %v", err)
			os.Exit(1)
		}

		// Basic validation
		if len(bearerToken) < 40 {
			fmt.Println("\n❌ That doesn't look like a bearer token.")
			fmt.Println("   App-only bearer tokens are long, typically over 100 characters.")
			fmt.Println("   Example: AAAAAAAAAAAAAAAAAAAAAMLheAAAAAAA0%2BuSeid%2BULvsea4...")
			fmt.Print("\nTry again? (Y/n): ")
			retry, _ := reader.ReadString('\n')
			if strings.ToLower(strings.TrimSpace(retry)) == "n" {
				os.Exit(1)
			}
			continue
		}
		break
	}

	// Optional: OAuth 1.0a key set
	var consumerKey, consumerSecret, accessToken, accessTokenSecret string
	fmt.Print("\nAdd OAuth 1.0a keys too? Not needed for fetching. (y/N): ")
	oauth, _ := reader.ReadString('\n')
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(oauth)), "y") {
		fmt.Println()
		fmt.Printf("consumer key: ")
		consumerKey, _ = readPassword()
		fmt.Printf("consumer secret: ")
		consumerSecret, _ = readPassword()
		fmt.Printf("access token: ")
		accessToken, _ = readPassword()
		fmt.Printf("access token secret: ")
		accessTokenSecret, _ = readPassword()
	}

	// Show what we're about to do
	fmt.Println("\n📋 Summary:")
	fmt.Printf("   Label: %s\n", label)
	fmt.Printf("   Bearer Token: %s...%s (hidden)\n", bearerToken[:8], bearerToken[len(bearerToken)-4:])
	if consumerKey != "" {
		fmt.Println("   OAuth 1.0a keys: provided")
	}

	// Create account
	account := &auth.Account{
		Label:             label,
		BearerToken:       bearerToken,
		ConsumerKey:       consumerKey,
		ConsumerSecret:    consumerSecret,
		AccessToken:       accessToken,
		AccessTokenSecret: accessTokenSecret,
		LastModified:      time.Now(),
	}

	// Store credentials
	fmt.Println("\n💾 Storing credentials securely...")
	if err := manager.Store(account); err != nil {
		ui.PrintError("Failed to store credentials: %v", err)
		os.Exit(1)
	}

	// First account becomes the default
	accounts, _ := manager.List()
	if len(accounts) == 1 {
		fmt.Printf("✅ Set '%s' as default account\n", label)
	}

	fmt.Println("\n🎉 Credentials stored successfully!")
	ui.PrintSuccess(fmt.Sprintf("Account saved: %s", label))

	// Show where credentials are stored
	fmt.Println("\n🔒 Security Information:")
	fmt.Println("   Your credentials are encrypted and stored in:")
	if auth.IsKeyringAvailable() {
		fmt.Println("   • System keychain (primary)")
	}
	fmt.Println("   • Encrypted file (backup)")

	// Show how to use
	fmt.Println("\n📖 Quick Start Guide:")
	fmt.Println("   Archive any public timeline:")
	fmt.Printf("   $ xscraper fetch <user-id>\n")
	fmt.Println("\n   Example:")
	fmt.Printf("   $ xscraper fetch 2244994945\n")
	fmt.Println("\n   Use this account explicitly:")
	fmt.Printf("   $ xscraper fetch <user-id> --account %s\n", label)
	fmt.Println("\n   Verify the token works:")
	fmt.Printf("   $ xscraper auth test %s\n", label)
	fmt.Println("\n⚠️  Never share your bearer token or config files!")
}

func runRemove(cmd *cobra.Command, args []string) {
	manager, err := auth.NewManager()
	if err != nil {
		ui.PrintError("Failed to initialize credential manager: %v", err)
		os.Exit(1)
	}

	if len(args) == 0 {
		// List accounts and ask which to remove
		accounts, err := manager.List()
		if err != nil || len(accounts) == 0 {
			ui.PrintError("No stored accounts found")
			return
		}

		if len(accounts) == 1 {
			// Only one account, confirm deletion
			account := accounts[0]
			reader := bufio.NewReader(os.Stdin)
			fmt.Printf("Remove account '%s'? (y/N): ", account.Label)
			input, _ := reader.ReadString('\n')
			if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(input)), "y") {
				return
			}

			if err := manager.Delete(account.Label); err != nil {
				ui.PrintError("Failed to remove account: %v", err)
				os.Exit(1)
			}
			ui.PrintSuccess("Account removed: " + account.Label)
			return
		}

		// Multiple accounts, show menu
		fmt.Println("Select account to remove:")
		for i, account := range accounts {
			fmt.Printf("  %d. %s\n", i+1, account.Label)
		}
		fmt.Printf("  %d. Remove all accounts\n", len(accounts)+1)
		fmt.Printf("  0. Cancel\n\n")

		reader := bufio.NewReader(os.Stdin)
		fmt.Print("Choice: ")
		input, _ := reader.ReadString('\n')

		var choice int
		fmt.Sscanf(strings.TrimSpace(input), "%d", &choice)

		if choice == 0 {
			return
		} else if choice == len(accounts)+1 {
			// Remove all
			fmt.Print("Remove ALL accounts? This cannot be undone! (yes/N): ")
			confirm, _ := reader.ReadString('\n')
			if strings.TrimSpace(confirm) != "yes" {
				return
			}

			if err := manager.DeleteAll(); err != nil {
				ui.PrintError("Failed to remove all accounts: %v", err)
				os.Exit(1)
			}
			ui.PrintSuccess("All accounts removed")
			return
		} else if choice > 0 && choice <= len(accounts) {
			account := accounts[choice-1]
			if err := manager.Delete(account.Label); err != nil {
				ui.PrintError("Failed to remove account: %v", err)
				os.Exit(1)
			}
			ui.PrintSuccess("Account removed: " + account.Label)
			return
		} else {
			ui.PrintError("Invalid choice")
			os.Exit(1)
		}
	}

	// Label provided as argument
	label := args[0]
	if err := manager.Delete(label); err != nil {
		ui.PrintError("Failed to remove account: %v", err)
		os.Exit(1)
	}
	ui.PrintSuccess("Account removed: " + label)
}

func runList(cmd *cobra.Command, args []string) {
	manager, err := auth.NewManager()
	if err != nil {
		ui.PrintError("Failed to initialize credential manager: %v", err)
		os.Exit(1)
	}

	accounts, err := manager.List()
	if err != nil {
		ui.PrintError("Failed to list accounts: %v", err)
		os.Exit(1)
	}

	if len(accounts) == 0 {
		ui.PrintInfo("No stored accounts", "Use 'xscraper auth login' to add an account")
		return
	}

	ui.PrintHighlight("Stored Accounts")
	fmt.Println()

	for i, account := range accounts {
		sanitized := auth.SanitizeAccount(account)
		fmt.Printf("%d. Label: %s\n", i+1, sanitized.Label)
		fmt.Printf("   Bearer Token: %s\n", sanitized.BearerToken)
		if sanitized.ConsumerKey != "" {
			fmt.Printf("   Consumer Key: %s\n", sanitized.ConsumerKey)
		}
		if sanitized.AccessToken != "" {
			fmt.Printf("   Access Token: %s\n", sanitized.AccessToken)
		}
		fmt.Printf("   Last Modified: %s\n", sanitized.LastModified.Format("2006-01-02 15:04:05"))
		fmt.Println()
	}
}

func runTest(cmd *cobra.Command, args []string) {
	manager, err := auth.NewManager()
	if err != nil {
		ui.PrintError("Failed to initialize credential manager: %v", err)
		os.Exit(1)
	}

	var account *auth.Account
	if len(args) > 0 {
		account, err = manager.Retrieve(args[0])
	} else {
		account, err = manager.RetrieveDefault()
	}
	if err != nil {
		ui.PrintError("No credentials found: %v", err)
		fmt.Println("\nStore a token first:")
		fmt.Println("  xscraper auth login")
		os.Exit(1)
	}

	ui.PrintInfo("Testing account", account.Label)

	tcfg := config.DefaultConfig().Twitter
	tcfg.BearerToken = account.BearerToken
	client := twitter.NewClient(&tcfg, nil)

	// Tweet 20 is a stable public object any valid app token can read.
	var payload struct {
		Data struct {
			ID   string `json:"id"`
			Text string `json:"text"`
		} `json:"data"`
	}
	if err := client.GetJSON(tcfg.BaseURL+"/2/tweets/20", &payload); err != nil {
		var apiErr *twitter.Error
		if errors.As(err, &apiErr) && apiErr.Type == twitter.ErrorTypeAuth {
			ui.PrintError("Token rejected (HTTP %d)", apiErr.Code)
			fmt.Println("\nThe token may have been revoked or regenerated. Store a fresh one:")
			fmt.Printf("  xscraper auth login %s\n", account.Label)
			os.Exit(1)
		}
		ui.PrintError("Request failed: %v", err)
		os.Exit(1)
	}

	ui.PrintSuccess(fmt.Sprintf("Token accepted (read tweet %s)", payload.Data.ID))
}

// readPassword reads a secret from stdin without echoing
func readPassword() (string, error) {
	// Try to read without echo
	if term.IsTerminal(int(syscall.Stdin)) {
		secret, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println() // New line after input
		if err == nil {
			return string(secret), nil
		}
	}

	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(input), nil
}
