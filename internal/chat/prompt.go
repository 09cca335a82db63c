package chat

import (
	"fmt"
	"sort"
	"strings"

	"github.com/toolroom/toolroom/internal/catalog"
)

// guidelines are the fixed behavioral instructions embedded in every prompt.
var guidelines = []string{
	"Prioritize safety: always mention relevant safety requirements before describing a procedure.",
	"Be specific to this device; do not answer with generic workshop advice when the reference data covers the question.",
	"If the reference data does not cover the question, say so instead of guessing.",
	"Format procedures and enumerations as lists.",
	"Use precise units and quantities.",
	"Stay on the topic of this device and its operation; politely decline unrelated questions.",
}

// BuildPrompt assembles the instructional prompt for one chat turn. It is a
// pure function of the device snapshot and the user's message so it can be
// tested without calling the provider.
func BuildPrompt(device *catalog.Device, userMessage string, imageURL string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are a workshop assistant for the %q", device.Name)
	if device.ShortDescription != "" {
		fmt.Fprintf(&b, " (%s)", device.ShortDescription)
	}
	b.WriteString(". Answer the user's question using the reference data below.\n")

	b.WriteString("\n## Reference data\n")

	if len(device.Specifications) > 0 {
		b.WriteString("\nSpecifications:\n")
		for _, key := range sortedKeys(device.Specifications) {
			fmt.Fprintf(&b, "- %s: %s\n", key, device.Specifications[key])
		}
	}

	if len(device.Materials) > 0 {
		b.WriteString("\nSupported materials:\n")
		for _, m := range device.Materials {
			fmt.Fprintf(&b, "- %s\n", m)
		}
	}

	if len(device.SafetyRequirements) > 0 {
		b.WriteString("\nSafety requirements:\n")
		for _, s := range device.SafetyRequirements {
			fmt.Fprintf(&b, "- %s\n", s)
		}
	}

	if len(device.UsageInstructions) > 0 {
		b.WriteString("\nUsage instructions:\n")
		for i, step := range device.UsageInstructions {
			fmt.Fprintf(&b, "%d. %s: %s\n", i+1, step.Title, step.Description)
		}
	}

	if len(device.Troubleshooting) > 0 {
		b.WriteString("\nTroubleshooting:\n")
		for _, item := range device.Troubleshooting {
			fmt.Fprintf(&b, "- Problem: %s\n  Solution: %s\n", item.Problem, item.Solution)
		}
	}

	b.WriteString("\n## Guidelines\n")
	for _, g := range guidelines {
		fmt.Fprintf(&b, "- %s\n", g)
	}

	b.WriteString("\n## User question\n")
	b.WriteString(userMessage)
	b.WriteString("\n")

	if imageURL != "" {
		fmt.Fprintf(&b,
			"\nThe user attached a photo with their question. It is hosted at %s. "+
				"Consider its content when answering.\n", imageURL)
	}

	return b.String()
}

// sortedKeys returns the map keys in a stable order so prompts are
// deterministic for a given device snapshot.
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
