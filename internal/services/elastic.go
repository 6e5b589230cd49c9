package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"

	"vitrine_back_end/internal/database"
	"vitrine_back_end/internal/models"

	"github.com/elastic/go-elasticsearch/v8/esapi"
)

//
// --- MIROIR DU CATALOGUE DANS ELASTICSEARCH ---
//

// IndexProducts indexe un lot de produits du catalogue externe.
// Best-effort : un échec d'indexation ne bloque jamais l'affichage.
func IndexProducts(products []models.Product) {
	if database.Elastic == nil {
		log.Println("⚠️ Elastic non initialisé, indexation catalogue ignorée")
		return
	}

	for _, p := range products {
		data, _ := json.Marshal(p)
		req := esapi.IndexRequest{
			Index:      "catalog",
			DocumentID: strconv.Itoa(p.ID),
			Body:       bytes.NewReader(data),
		}

		res, err := req.Do(context.Background(), database.Elastic)
		if err != nil {
			log.Println("❌ Erreur envoi Elastic:", err)
			return
		}
		res.Body.Close()

		if res.IsError() {
			log.Printf("⚠️ Elastic a renvoyé une erreur pour %q: %s", p.Title, res.String())
		}
	}
}

//
// --- RECHERCHE DANS ELASTICSEARCH ---
//

// SearchProducts cherche dans le miroir du catalogue par titre, description ou catégorie.
func SearchProducts(query string) ([]models.Product, error) {
	if database.Elastic == nil {
		return nil, errors.New("client Elasticsearch non initialisé")
	}

	var buf bytes.Buffer
	q := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": []string{"title", "description", "category"},
			},
		},
	}

	if err := json.NewEncoder(&buf).Encode(q); err != nil {
		return nil, fmt.Errorf("erreur encodage requête: %v", err)
	}

	req := esapi.SearchRequest{
		Index: []string{"catalog"},
		Body:  &buf,
	}
	res, err := req.Do(context.Background(), database.Elastic)
	if err != nil {
		return nil, fmt.Errorf("erreur requête Elastic: %v", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		var e map[string]interface{}
		json.NewDecoder(res.Body).Decode(&e)
		log.Printf("❌ Elasticsearch erreur: %+v", e)
		return nil, errors.New("index non trouvé ou vide")
	}

	var r struct {
		Hits struct {
			Hits []struct {
				Source models.Product `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("erreur décodage JSON: %v", err)
	}

	results := make([]models.Product, 0, len(r.Hits.Hits))
	for _, hit := range r.Hits.Hits {
		results = append(results, hit.Source)
	}
	return results, nil
}
