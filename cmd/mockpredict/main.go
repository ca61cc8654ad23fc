// Command mockpredict runs a stand-in for the remote prediction service,
// for local development and manual testing of the report service. It scores
// submissions with a simple additive heuristic over the risky input
// conditions and responds with the same payload shape as the real service.
//
// Degraded modes exercise the consumer's fail-soft paths:
//
//	go run ./cmd/mockpredict                  # well-formed responses
//	go run ./cmd/mockpredict -mode partial    # only probabilities.high_risk
//	go run ./cmd/mockpredict -mode malformed  # invalid JSON body
//	go run ./cmd/mockpredict -mode non-object # a JSON string body
//	go run ./cmd/mockpredict -mode error      # HTTP 500
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
)

type submission struct {
	Region           string `json:"Region"`
	RoadType         string `json:"Road Type"`
	WeatherCondition string `json:"Weather Condition"`
	SpeedLimit       int    `json:"Speed Limit"`
	TimeOfDay        string `json:"Time of Day"`
	NumberOfVehicles int    `json:"Number of Vehicles"`
}

func main() {
	addr := flag.String("addr", ":5000", "listen address")
	mode := flag.String("mode", "normal", "response mode: normal, partial, malformed, non-object, error")
	flag.Parse()

	mux := http.NewServeMux()
	// Method-restricted registrations, equivalent to Go 1.22+ "METHOD /path"
	// ServeMux patterns; written out for pre-1.22 toolchains.
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", http.MethodGet)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintln(w, `{"status": "healthy"}`)
	})
	mux.HandleFunc("/api/predict", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		handlePredict(*mode)(w, r)
	})

	log.Printf("mock prediction service listening on %s (mode=%s)", *addr, *mode)
	log.Fatal(http.ListenAndServe(*addr, mux))
}

func handlePredict(mode string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var sub submission
		if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
			http.Error(w, `{"error": "No data provided"}`, http.StatusBadRequest)
			return
		}

		switch mode {
		case "error":
			http.Error(w, `{"error": "Model not loaded. Please try again later."}`, http.StatusInternalServerError)
			return
		case "malformed":
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"risk_level": "High", "confidence":`)
			return
		case "non-object":
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `"service offline"`)
			return
		}

		score := baseRiskScore(sub)
		resp := buildResponse(sub, score)
		if mode == "partial" {
			resp = map[string]any{
				"probabilities": map[string]string{
					"high_risk": resp["probabilities"].(map[string]string)["high_risk"],
				},
			}
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}

// baseRiskScore adds 0.1 per risky condition, mirroring the heuristic the
// real model blends into its output. Range [0, 0.5].
func baseRiskScore(sub submission) float64 {
	score := 0.0
	if sub.SpeedLimit > 40 {
		score += 0.1
	}
	if sub.TimeOfDay == "Night" || sub.TimeOfDay == "Evening" {
		score += 0.1
	}
	if sub.WeatherCondition != "Fine" {
		score += 0.1
	}
	if sub.RoadType == "Urban" || sub.RoadType == "Rural" {
		score += 0.1
	}
	if sub.NumberOfVehicles > 2 {
		score += 0.1
	}
	return score
}

func buildResponse(sub submission, score float64) map[string]any {
	high := score * 100
	medium := (0.5 - score) * 60
	low := 100 - high - medium
	confidence := 40 + score*110

	level := "Low"
	switch {
	case confidence >= 70:
		level = "High"
	case confidence >= 40:
		level = "Medium"
	}

	return map[string]any{
		"risk_level": level,
		"confidence": fmt.Sprintf("%.1f%%", confidence),
		"probabilities": map[string]string{
			"high_risk":   fmt.Sprintf("%.1f%%", high),
			"medium_risk": fmt.Sprintf("%.1f%%", medium),
			"low_risk":    fmt.Sprintf("%.1f%%", low),
		},
		"risk_factors":    riskFactors(sub),
		"recommendations": recommendations(sub, level),
	}
}

func riskFactors(sub submission) []string {
	var factors []string
	if sub.TimeOfDay == "Night" || sub.TimeOfDay == "Evening" {
		factors = append(factors, "Limited visibility during night/evening hours")
	}
	if sub.WeatherCondition != "Fine" {
		factors = append(factors, fmt.Sprintf("Adverse weather conditions (%s)", sub.WeatherCondition))
	}
	if sub.SpeedLimit > 40 {
		factors = append(factors, "High speed zone")
	}
	if sub.RoadType == "Urban" {
		factors = append(factors, "Urban area with high traffic")
	}
	if sub.RoadType == "Rural" {
		factors = append(factors, "Rural road with potential hazards")
	}
	return factors
}

func recommendations(sub submission, level string) []string {
	var recs []string
	if level == "High" {
		if sub.SpeedLimit > 40 {
			recs = append(recs, "Consider reducing speed limit in this area")
		}
		if sub.TimeOfDay == "Night" || sub.TimeOfDay == "Evening" {
			recs = append(recs, "Improve street lighting conditions")
		}
		if sub.WeatherCondition != "Fine" {
			recs = append(recs, fmt.Sprintf("Install weather warning signs for %s conditions", sub.WeatherCondition))
		}
	} else {
		if sub.WeatherCondition != "Fine" {
			recs = append(recs, "Ensure regular road maintenance")
		}
		if sub.SpeedLimit <= 30 {
			recs = append(recs, "Current speed restrictions are appropriate")
		}
	}
	if len(recs) == 0 {
		recs = append(recs, "No specific recommendations needed at this time")
	}
	return recs
}
