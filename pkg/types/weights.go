// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Check labels. They prefix every issue the check reports.
const (
	CheckDescription  = "Description"
	CheckName         = "Name"
	CheckConciseness  = "Conciseness"
	CheckExamples     = "Examples"
	CheckStructure    = "Structure"
	CheckAntiPatterns = "Anti-patterns"
)

// Maximum weight of each inspected check.
const (
	MaxDescription  = 2.0
	MaxName         = 0.5
	MaxConciseness  = 1.5
	MaxExamples     = 1.0
	MaxStructure    = 1.0
	MaxAntiPatterns = 1.0
)

// Fixed credit for criteria that cannot be verified from the text alone.
const (
	BonusProgressiveDisclosure = 1.0
	BonusDegreeOfFreedom       = 0.5
	BonusDependencies          = 0.5
	BonusErrorHandling         = 0.5
	BonusTesting               = 0.5
)

// MaxScore is the sum of every check maximum and every fixed bonus.
const MaxScore = 10.0

// PassThreshold is the default minimum score for a passing skill.
const PassThreshold = 8.0
