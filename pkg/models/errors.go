package models

import "fmt"

/*
ERRORS → conditions signalées au niveau d'un rapport (jamais fatales pour l'exécution)
*/

// DataIntegrityError : une transaction ne porte pas un champ requis.
// L'enregistrement fautif est identifié pour permettre la correction en amont.
type DataIntegrityError struct {
	TransactionID string
	Field         string
}

func (e *DataIntegrityError) Error() string {
	id := e.TransactionID
	if id == "" {
		id = "<sans id>"
	}
	return fmt.Sprintf("transaction %s: champ requis manquant %q", id, e.Field)
}

// EmptyPopulationError : percentile ou moyenne demandé sur zéro enregistrement éligible.
type EmptyPopulationError struct {
	Metric string
}

func (e *EmptyPopulationError) Error() string {
	return fmt.Sprintf("population vide pour la métrique %q", e.Metric)
}
