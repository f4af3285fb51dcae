package models

import "strings"

// Category is a closed set of course and instructor specialisations, stored and serialised by name.
type Category string

const (
	FrontendDevelopment  Category = "FrontendDevelopment"
	BackendDevelopment   Category = "BackendDevelopment"
	FullstackDevelopment Category = "FullstackDevelopment"
	UXUIDesign           Category = "UXUIDesign"
	MobileDevelopment    Category = "MobileDevelopment"
	DevOps               Category = "DevOps"
	DataEngineering      Category = "DataEngineering"
	DataScience          Category = "DataScience"
	QualityAssurance     Category = "QualityAssurance"
	ProductManagement    Category = "ProductManagement"
	ProjectManagement    Category = "ProjectManagement"
	SystemAdministration Category = "SystemAdministration"
	SecurityEngineering  Category = "SecurityEngineering"
	CloudArchitecture    Category = "CloudArchitecture"
	BusinessAnalysis     Category = "BusinessAnalysis"
)

var categories = []Category{
	FrontendDevelopment, BackendDevelopment, FullstackDevelopment, UXUIDesign, MobileDevelopment,
	DevOps, DataEngineering, DataScience, QualityAssurance, ProductManagement,
	ProjectManagement, SystemAdministration, SecurityEngineering, CloudArchitecture, BusinessAnalysis,
}

// AllCategories returns every category in declaration order.
func AllCategories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

func (c Category) Valid() bool {
	for _, known := range categories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory matches a name case-insensitively.
func ParseCategory(s string) (Category, bool) {
	s = strings.TrimSpace(s)
	for _, known := range categories {
		if strings.EqualFold(string(known), s) {
			return known, true
		}
	}
	return "", false
}

type Level string

const (
	AllLevels    Level = "AllLevels"
	Beginner     Level = "Beginner"
	Intermediate Level = "Intermediate"
	Expert       Level = "Expert"
)

func (l Level) Valid() bool {
	switch l {
	case AllLevels, Beginner, Intermediate, Expert:
		return true
	}
	return false
}

func ParseLevel(s string) (Level, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return AllLevels, true
	}
	for _, known := range []Level{AllLevels, Beginner, Intermediate, Expert} {
		if strings.EqualFold(string(known), s) {
			return known, true
		}
	}
	return "", false
}

const (
	RoleAdmin = "Admin"
	RoleUser  = "User"
)
