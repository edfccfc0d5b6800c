package keywords

// Theme identifies a business-activity category used to classify evidence
type Theme string

const (
	ThemeRecrutements     Theme = "recrutements"
	ThemeEvenements       Theme = "evenements"
	ThemeVieEntreprise    Theme = "vie_entreprise"
	ThemeInnovations      Theme = "innovations"
	ThemeExportations     Theme = "exportations"
	ThemeAidesSubventions Theme = "aides_subventions"
	ThemeFondationSponsor Theme = "fondation_sponsor"
)

// AllThemes lists the fixed theme set in stable order
func AllThemes() []Theme {
	return []Theme{
		ThemeRecrutements,
		ThemeEvenements,
		ThemeVieEntreprise,
		ThemeInnovations,
		ThemeExportations,
		ThemeAidesSubventions,
		ThemeFondationSponsor,
	}
}

// Valid reports whether t is one of the fixed themes
func (t Theme) Valid() bool {
	switch t {
	case ThemeRecrutements, ThemeEvenements, ThemeVieEntreprise,
		ThemeInnovations, ThemeExportations, ThemeAidesSubventions,
		ThemeFondationSponsor:
		return true
	}
	return false
}
