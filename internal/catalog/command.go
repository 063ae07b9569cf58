package catalog

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gitq-dev/gitq/internal/render"
)

const (
	commandUseConstant              = "list"
	commandShortDescriptionConstant = "Describe every available gitq tool"
	commandLongDescriptionConstant  = "list prints each gitq tool with a one-line summary. Tools that modify the repository are marked. The listing does not require a repository."
	mutatingMarkerConstant          = "*"
	readOnlyMarkerConstant          = " "
	toolLineTemplateConstant        = "%s %s  %s\n"
	legendMessageConstant           = "tools marked * modify the repository"
	legendTemplateConstant          = "\n%s\n"
	toolNamePaddingConstant         = "%-8s"
)

// CommandBuilder assembles the Cobra command for the tool listing.
type CommandBuilder struct{}

// Build constructs the list command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	return &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, _ []string) error {
	toolDescriptions, loadError := LoadTools()
	if loadError != nil {
		return loadError
	}

	for _, toolDescription := range toolDescriptions {
		mutationMarker := readOnlyMarkerConstant
		if toolDescription.Mutates {
			mutationMarker = render.WarningStyle.Render(mutatingMarkerConstant)
		}
		paddedName := fmt.Sprintf(toolNamePaddingConstant, toolDescription.Name)
		fmt.Fprintf(command.OutOrStdout(), toolLineTemplateConstant,
			mutationMarker, render.AccentStyle.Render(paddedName), toolDescription.Summary)
	}

	fmt.Fprintf(command.OutOrStdout(), legendTemplateConstant, render.MutedStyle.Render(legendMessageConstant))
	return nil
}
