package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/webqual/webgate/internal/config"
)

func initCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a webgate configuration file",
		Long: `Generate a webgate configuration file with sensible defaults.

By default, creates webgate.config.json in the current directory. Use
--interactive for a guided setup wizard.

Examples:
  # Create webgate.config.json in current directory
  webgate init

  # Custom output path
  webgate init --config custom.json

  # Overwrite existing file
  webgate init --force

  # Generate smaller config with gates and readiness policy only
  webgate init --minimal

  # Interactive setup wizard
  webgate init --interactive
  webgate init -i`,
		RunE: runInit,
	}

	cmd.Flags().StringP("config", "c", "webgate.config.json",
		"Output path for the config file")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing config file")
	cmd.Flags().Bool("minimal", false,
		"Generate minimal config with gates and readiness policy only")
	cmd.Flags().BoolP("interactive", "i", false,
		"Interactive setup wizard")

	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	force, _ := cmd.Flags().GetBool("force")
	minimal, _ := cmd.Flags().GetBool("minimal")
	interactive, _ := cmd.Flags().GetBool("interactive")

	var profile config.SiteProfile = config.SiteProfileGeneric
	var strictness config.Strictness = config.StrictnessStandard

	if interactive {
		var err error
		profile, strictness, configPath, err = runInteractiveSetup(configPath)
		if err != nil {
			return err
		}
	}

	if !force {
		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("%s already exists. Use --force to overwrite", configPath)
		}
	}

	dir := filepath.Dir(configPath)
	if dir != "." && dir != "" {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			return fmt.Errorf("directory does not exist: %s", dir)
		}
	}

	var content string
	if minimal {
		content = config.GetMinimalConfigTemplate()
	} else {
		content = config.GetFullConfigTemplate(profile, strictness)
	}

	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	displayPath := configPath
	if absPath, err := filepath.Abs(configPath); err == nil {
		displayPath = absPath
	}
	fmt.Printf("Created %s\n", displayPath)
	fmt.Println("\nRun 'webgate run --url https://your-site.example' to gate a deployment.")

	return nil
}

func runInteractiveSetup(defaultConfigPath string) (config.SiteProfile, config.Strictness, string, error) {
	fmt.Println()
	fmt.Println("webgate Configuration Setup")
	fmt.Println("===========================")
	fmt.Println()

	profiles := []struct {
		Label string
		Value config.SiteProfile
	}{
		{"Generic website", config.SiteProfileGeneric},
		{"Marketing / landing pages", config.SiteProfileMarketing},
		{"Commerce / checkout flows", config.SiteProfileCommerce},
		{"Dashboard / web app", config.SiteProfileDashboard},
	}

	profileTemplates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "\U0001F449 {{ .Label | cyan }}",
		Inactive: "   {{ .Label | white }}",
		Selected: "\U00002705 {{ .Label | green }}",
	}

	profilePrompt := promptui.Select{
		Label:     "What kind of site is this?",
		Items:     profiles,
		Templates: profileTemplates,
	}

	profileIdx, _, err := profilePrompt.Run()
	if err != nil {
		return "", "", "", fmt.Errorf("profile selection cancelled: %w", err)
	}
	selectedProfile := profiles[profileIdx].Value

	fmt.Println()

	strictnessLevels := []struct {
		Label       string
		Description string
		Value       config.Strictness
	}{
		{"Standard (recommended)", "Balanced gate thresholds for most sites", config.StrictnessStandard},
		{"Relaxed", "Lower thresholds, fewer blocked deployments", config.StrictnessRelaxed},
		{"Strict", "Zero-tolerance thresholds for regulated releases", config.StrictnessStrict},
	}

	strictnessTemplates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "\U0001F449 {{ .Label | cyan }} - {{ .Description | faint }}",
		Inactive: "   {{ .Label | white }} - {{ .Description | faint }}",
		Selected: "\U00002705 {{ .Label | green }}",
	}

	strictnessPrompt := promptui.Select{
		Label:     "How strict should the gates be?",
		Items:     strictnessLevels,
		Templates: strictnessTemplates,
	}

	strictnessIdx, _, err := strictnessPrompt.Run()
	if err != nil {
		return "", "", "", fmt.Errorf("strictness selection cancelled: %w", err)
	}
	selectedStrictness := strictnessLevels[strictnessIdx].Value

	fmt.Println()

	outputPrompt := promptui.Prompt{
		Label:   "Output file path",
		Default: defaultConfigPath,
	}

	outputPath, err := outputPrompt.Run()
	if err != nil {
		return "", "", "", fmt.Errorf("output path input cancelled: %w", err)
	}
	if outputPath == "" {
		outputPath = defaultConfigPath
	}

	fmt.Println()
	fmt.Printf("Creating %s... ", outputPath)

	return selectedProfile, selectedStrictness, outputPath, nil
}
