package travelPlan

import (
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/FACorreiaa/go-travel-planner-ai/internal/types"
)

const planPromptTemplate = `Kamu adalah travel planner expert untuk Indonesia.
Buatkan rencana perjalanan wisata dengan detail berikut:

Kota: %s
Minat: %s
Durasi: %d hari
Budget: %s
%s
Berikan rekomendasi 5-8 destinasi wisata yang sesuai. Untuk setiap destinasi, berikan:
1. Nama lokasi yang spesifik dan akurat
2. Deskripsi singkat (2-3 kalimat)
3. Kategori (kuliner/sejarah/alam/belanja/religi/hiburan)
4. Estimasi waktu kunjungan
5. Tips praktis

Urutkan destinasi dalam rute yang logis dan efisien dengan pertimbangan jarak dan waktu tempuh ke setiap lokasi serta budget.

PENTING: Berikan response dalam format JSON yang valid dengan struktur:
{
  "destinations": [
    {
      "name": "Nama Lengkap Lokasi",
      "description": "Deskripsi detail",
      "category": "kategori",
      "estimated_duration": "durasi",
      "tips": "tips praktis"
    }
  ],
  "route_summary": "Ringkasan rute perjalanan",
  "estimated_time": "Total estimasi waktu",
  "total_distance": "Total jarak tempuh dalam km dari semua destinasi",
  "budget_consideration": "Penjelasan singkat tentang bagaimana budget dipertimbangkan",
  "start_location": "Lokasi awal perjalanan"
}

Hanya return JSON, tanpa penjelasan tambahan.`

// getPlanPrompt renders the itinerary prompt for prefs.
func getPlanPrompt(prefs types.TravelPreferences) string {
	var start string
	if prefs.StartLocation != nil && strings.TrimSpace(*prefs.StartLocation) != "" {
		start = fmt.Sprintf("Lokasi awal: %s (mulai rute dari lokasi ini)\n", strings.TrimSpace(*prefs.StartLocation))
	}
	return fmt.Sprintf(planPromptTemplate,
		prefs.City,
		strings.Join(prefs.Interests, ", "),
		prefs.Duration,
		prefs.Budget,
		start,
	)
}

func stringSchema(description string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeString, Description: description}
}

// planResponseSchema mirrors the JSON structure requested in the prompt. It is only
// enforced by providers that support constrained output.
var planResponseSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"destinations": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"name":               stringSchema("Nama lengkap lokasi"),
					"description":        stringSchema("Deskripsi singkat, 2-3 kalimat"),
					"category":           stringSchema("kuliner/sejarah/alam/belanja/religi/hiburan"),
					"estimated_duration": stringSchema("Estimasi waktu kunjungan"),
					"tips":               stringSchema("Tips praktis"),
				},
				Required:         []string{"name", "description", "category", "estimated_duration", "tips"},
				PropertyOrdering: []string{"name", "description", "category", "estimated_duration", "tips"},
			},
		},
		"route_summary":        stringSchema("Ringkasan rute perjalanan"),
		"estimated_time":       stringSchema("Total estimasi waktu"),
		"total_distance":       stringSchema("Total jarak tempuh dalam km"),
		"budget_consideration": stringSchema("Bagaimana budget dipertimbangkan"),
		"start_location":       stringSchema("Lokasi awal perjalanan"),
	},
	Required: []string{"destinations"},
	PropertyOrdering: []string{
		"destinations", "route_summary", "estimated_time",
		"total_distance", "budget_consideration", "start_location",
	},
}
