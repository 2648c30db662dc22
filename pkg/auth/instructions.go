package auth

import (
	"fmt"
	"strings"
)

// ShowBearerTokenGuide displays step-by-step instructions for obtaining an API token
func ShowBearerTokenGuide() {
	fmt.Println(strings.Repeat("=", 80))
	fmt.Println("📚 X API BEARER TOKEN GUIDE")
	fmt.Println(strings.Repeat("=", 80))
	fmt.Println()

	fmt.Println("This tool needs an X API v2 bearer token to read public timelines.")
	fmt.Println("Follow these steps to create one in the developer portal:")
	fmt.Println()

	// Developer account
	fmt.Println("🌐 STEP 1: Sign up for developer access")
	fmt.Println("   - Go to https://developer.twitter.com")
	fmt.Println("   - Log in with your X account")
	fmt.Println("   - Apply for (at least) the Free access tier")
	fmt.Println()

	// Project and app
	fmt.Println("🔧 STEP 2: Create a Project and an App")
	fmt.Println("   - Open the Developer Portal dashboard")
	fmt.Println("   - Create a Project, then an App inside it")
	fmt.Println("   - v2 endpoints only work for Apps attached to a Project")
	fmt.Println()

	// Keys and tokens
	fmt.Println("🔑 STEP 3: Generate the Bearer Token")
	fmt.Println("   1. Open your App's 'Keys and tokens' tab")
	fmt.Println("   2. Under 'Authentication Tokens', find 'Bearer Token'")
	fmt.Println("   3. Click 'Generate' (or 'Regenerate')")
	fmt.Println("   4. Copy the token immediately - it is shown only once")
	fmt.Println()

	fmt.Println("   The token is a long base64-ish string, for example:")
	fmt.Println("   AAAAAAAAAAAAAAAAAAAAAMLheAAAAAAA0%2BuSeid%2BULvsea4JtiGRiSDSJSI%3D...")
	fmt.Println()

	// Storing it
	fmt.Println("💾 STEP 4: Store it with this tool")
	fmt.Println("   ┌──────────────────────────────────────────────────────────────┐")
	fmt.Println("   │ xscraper auth login              stores it encrypted locally │")
	fmt.Println("   │ export XSCRAPER_BEARER_TOKEN=... one-off runs and CI          │")
	fmt.Println("   └──────────────────────────────────────────────────────────────┘")
	fmt.Println()

	// Tips
	fmt.Println("💡 TIPS:")
	fmt.Println("   • The bearer token is app-only auth; it can read public data only")
	fmt.Println("   • Consumer key/secret and access token/secret are optional extras")
	fmt.Println("   • Regenerating the token invalidates the old one everywhere")
	fmt.Println()

	// Security warning
	fmt.Println("⚠️  SECURITY WARNING:")
	fmt.Println("   • The token authenticates as YOUR app - never commit or share it")
	fmt.Println("   • Store it securely (this tool encrypts it at rest)")
	fmt.Println("   • Rotate it from the portal if you suspect a leak")
	fmt.Println()
	fmt.Println(strings.Repeat("=", 80))
	fmt.Println()
}

// ShowQuickTokenGuide shows a condensed version for experienced users
func ShowQuickTokenGuide() {
	fmt.Println("\n🔑 Quick Guide: developer.twitter.com → Project → App → Keys and tokens → Bearer Token → Generate")
	fmt.Println("   Then: xscraper auth login  (or export XSCRAPER_BEARER_TOKEN=...)")
	fmt.Println("   Type 'help' for detailed instructions")
}
