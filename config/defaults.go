package config

func DefaultSystemConfig() *SystemConfig {
	return &SystemConfig{
		DataDirectory: "~/.local/share/traychat",
	}
}

func DefaultUserConfig() *UserConfig {
	return &UserConfig{
		Security: SecurityConfig{
			Method: string(SecurityPlainText),
		},
	}
}

func GenerateUserConfigTemplate() string {
	return `# traychat User Configuration
# Location: <data_directory>/config.toml
# This file uses TOML format: https://toml.io

# Default model to preselect, as "provider/model-id"
# Providers: openai, anthropic, gemini, openrouter, openrouter-free
# Example: default_model = "anthropic/claude-sonnet-4-5"
default_model = ""

[security]
# How API keys are stored: "plaintext" (credentials.toml, 0600) or
# "ssh_key" (credentials.enc, AES-GCM key derived from your SSH key)
method = "plaintext"

# Path to the SSH private key (ssh_key method only)
# ssh_key_path = "~/.ssh/id_ed25519"
`
}
