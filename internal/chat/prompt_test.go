package chat_test

import (
	"strings"
	"testing"

	"github.com/toolroom/toolroom/internal/api/models"
	"github.com/toolroom/toolroom/internal/catalog"
	"github.com/toolroom/toolroom/internal/chat"
)

func promptDevice() *catalog.Device {
	return &catalog.Device{
		ID:               1,
		Name:             "Table Saw",
		ShortDescription: "10-inch cabinet saw",
		Specifications: map[string]string{
			"power":       "2200 W",
			"blade":       "254 mm",
			"table depth": "690 mm",
		},
		Materials:          []string{"Softwood", "Hardwood", "Plywood"},
		SafetyRequirements: []string{"Wear eye protection", "Use the riving knife"},
		UsageInstructions: []models.InstructionStep{
			{Title: "Set blade height", Description: "Raise the blade a tooth above the stock."},
			{Title: "Make the cut", Description: "Feed the stock steadily against the fence."},
		},
		Troubleshooting: []models.TroubleshootingItem{
			{Problem: "Burn marks on the cut", Solution: "Check blade alignment and feed faster."},
		},
	}
}

func TestBuildPrompt_ContainsDeviceAndQuestion(t *testing.T) {
	prompt := chat.BuildPrompt(promptDevice(), "How high should the blade be?", "")

	for _, want := range []string{
		"Table Saw",
		"10-inch cabinet saw",
		"power: 2200 W",
		"- Softwood",
		"- Wear eye protection",
		"1. Set blade height",
		"Problem: Burn marks on the cut",
		"How high should the blade be?",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("expected prompt to contain %q", want)
		}
	}
}

func TestBuildPrompt_IncludesGuidelines(t *testing.T) {
	prompt := chat.BuildPrompt(promptDevice(), "anything", "")

	if !strings.Contains(prompt, "## Guidelines") {
		t.Error("expected a guidelines section")
	}
	if !strings.Contains(prompt, "Prioritize safety") {
		t.Error("expected the safety guideline")
	}
}

func TestBuildPrompt_ImageNote(t *testing.T) {
	withImage := chat.BuildPrompt(promptDevice(), "What is this part?", "/uploads/abc.jpg")
	if !strings.Contains(withImage, "/uploads/abc.jpg") {
		t.Error("expected prompt to reference the attached image")
	}

	withoutImage := chat.BuildPrompt(promptDevice(), "What is this part?", "")
	if strings.Contains(withoutImage, "attached a photo") {
		t.Error("expected no image note without an image")
	}
}

func TestBuildPrompt_Deterministic(t *testing.T) {
	device := promptDevice()
	first := chat.BuildPrompt(device, "q", "")
	for i := 0; i < 10; i++ {
		if got := chat.BuildPrompt(device, "q", ""); got != first {
			t.Fatal("expected identical prompts for identical input")
		}
	}
}

func TestBuildPrompt_SkipsEmptySections(t *testing.T) {
	device := &catalog.Device{ID: 2, Name: "Bench Vise"}
	prompt := chat.BuildPrompt(device, "How do I clamp round stock?", "")

	for _, section := range []string{"Specifications:", "Supported materials:", "Safety requirements:", "Usage instructions:", "Troubleshooting:"} {
		if strings.Contains(prompt, section) {
			t.Errorf("expected empty section %q to be omitted", section)
		}
	}
}
