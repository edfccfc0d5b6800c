package keywords

// DefaultLists returns the built-in keyword lists, used when no keyword
// file is configured.
func DefaultLists() map[Theme][]Keyword {
	lists := map[Theme][]string{
		ThemeEvenements: {
			"porte ouverte", "portes ouvertes", "conférence", "salon", "forum",
			"rencontre", "événement", "manifestation", "colloque", "séminaire",
			"venez découvrir",
		},
		ThemeRecrutements: {
			"recrutement", "nous recrutons", "embauche", "recrute", "offre emploi",
			"offres emploi", "CDI", "CDD", "stage", "alternance", "apprentissage",
			"carrière", "poste", "cherchons", "rejoindre notre équipe",
		},
		ThemeVieEntreprise: {
			"ouverture", "fermeture", "déménagement", "implantation", "développement",
			"expansion", "partenariat", "collaboration", "fusion", "acquisition",
			"restructuration", "rachat",
		},
		ThemeInnovations: {
			"modernisation", "innovation", "nouveau produit", "nouveau service",
			"lancement", "brevet", "R&D", "recherche développement", "technologie",
			"prototype",
		},
		ThemeExportations: {
			"export", "exportation", "international", "marché international",
			"contrat export", "développement international", "commerce extérieur",
		},
		ThemeAidesSubventions: {
			"subvention", "financement", "soutien", "crédit", "subventionné",
			"prêt", "investissement public", "dispositif d'aide",
		},
		ThemeFondationSponsor: {
			"fondation", "sponsor", "sponsoring", "mécénat", "dons",
			"charitable", "solidarité", "engagement social",
		},
	}

	out := make(map[Theme][]Keyword, len(lists))
	for theme, phrases := range lists {
		kws := make([]Keyword, 0, len(phrases))
		for _, p := range phrases {
			kws = append(kws, Keyword{Phrase: p, Weight: 1.0})
		}
		out[theme] = kws
	}
	return out
}
