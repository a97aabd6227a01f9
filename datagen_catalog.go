//go:build datagen_catalog
// +build datagen_catalog

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"historyatlas/src/domain"
	"historyatlas/src/domain/entities"
	"historyatlas/src/infra/kafka"

	"github.com/go-faker/faker/v4"
)

var (
	rulerTitles       = []string{"Emperor", "King", "Queen", "Negus", "Sultan", "Regent"}
	placeTypes        = []string{"Capital", "Monastery", "Port", "Fortress", "Market town"}
	personTitles      = []string{"General", "Poet", "Scholar", "Empress", "Saint", ""}
	productCategories = []string{"shirts", "hoodie", "posters", "mugs"}
	regionColors      = []string{"#8b5cf6", "#f59e0b", "#10b981", "#ef4444", "#3b82f6"}
)

func year(from, to int) *int {
	y := from + rand.Intn(to-from+1)
	return &y
}

// location gera coordenadas ao redor do Chifre da África.
func location() *entities.Location {
	return &entities.Location{3 + rand.Float64()*12, 33 + rand.Float64()*12}
}

func period(start, end *int) string {
	if end == nil {
		return fmt.Sprintf("%d-present", *start)
	}
	return fmt.Sprintf("%d-%d", *start, *end)
}

func span() (*int, *int) {
	start := year(800, 1990)
	end := year(*start, min(*start+80, 2026))
	return start, end
}

func generateDocument(collection domain.Collection) any {
	id := faker.UUIDHyphenated()

	switch collection {
	case domain.CollectionRulers:
		start, end := span()
		return entities.Ruler{
			ID: id, Name: faker.FirstName() + " " + faker.LastName(),
			Title: rulerTitles[rand.Intn(len(rulerTitles))], Period: period(start, end),
			Location: location(), StartYear: start, EndYear: end,
			Image: faker.URL(), Summary: faker.Paragraph(),
		}
	case domain.CollectionPlaces:
		start, end := span()
		if rand.Intn(3) == 0 {
			end = nil
		}
		return entities.Place{
			ID: id, Name: strings.Title(faker.Word()), //nolint:staticcheck
			Type: placeTypes[rand.Intn(len(placeTypes))], Period: period(start, end),
			Location: location(), StartYear: start, EndYear: end,
			Image: faker.URL(), Summary: faker.Paragraph(),
		}
	case domain.CollectionBattles:
		return entities.Battle{
			ID: id, Name: "Battle of " + strings.Title(faker.Word()), //nolint:staticcheck
			Location: location(), Year: year(800, 2000), Summary: faker.Sentence(),
		}
	case domain.CollectionPeople:
		start, end := span()
		return entities.Person{
			ID: id, Name: faker.Name(), Title: personTitles[rand.Intn(len(personTitles))],
			Period: period(start, end), Location: location(), StartYear: start, EndYear: end,
			Summary: faker.Paragraph(),
		}
	case domain.CollectionRegions:
		start, end := span()
		years := make([]int, 0, *end-*start+1)
		for y := *start; y <= *end; y++ {
			years = append(years, y)
		}
		center := location()
		return entities.Region{
			ID: id, Name: strings.Title(faker.Word()) + " Kingdom", //nolint:staticcheck
			Dynasty: faker.LastName(), Period: period(start, end),
			Color: regionColors[rand.Intn(len(regionColors))], ActiveYears: years,
			Bounds: [][]float64{
				{center.Latitude() - 1, center.Longitude() - 1},
				{center.Latitude() + 1, center.Longitude() + 1},
			},
			Summary: faker.Sentence(),
		}
	default:
		return entities.Product{
			ID: id, Name: strings.Title(faker.Word()) + " " + strings.Title(faker.Word()), //nolint:staticcheck
			Description: faker.Sentence(), Price: float64(500+rand.Intn(3000)) / 2,
			Image:    faker.URL(),
			Category: productCategories[rand.Intn(len(productCategories))],
		}
	}
}

func generateMessage(collection domain.Collection, documents int) (domain.CatalogSyncMessage, error) {
	message := domain.CatalogSyncMessage{Collection: string(collection)}
	for i := 0; i < documents; i++ {
		raw, err := json.Marshal(generateDocument(collection))
		if err != nil {
			return message, err
		}
		message.Documents = append(message.Documents, raw)
	}
	return message, nil
}

func main() {
	// Command line flags
	totalMessages := flag.Int("count", 60, "Total number of messages to generate. Use -1 for infinite.")
	documentsPerMessage := flag.Int("documents", 5, "Documents per message")
	only := flag.String("collection", "", "Generate a single collection (default: round-robin over all)")
	topic := flag.String("topic", "", "Kafka topic to send messages to (required)")
	brokers := flag.String("brokers", "", "Kafka brokers (comma-separated) (required)")
	delayMs := flag.Int("delay-ms", 100, "Delay in milliseconds between messages")
	flag.Parse()

	// Validate required flags
	if *topic == "" {
		log.Fatal("The 'topic' flag is required")
	}
	if *brokers == "" {
		log.Fatal("The 'brokers' flag is required")
	}

	collections := domain.CatalogCollections
	if *only != "" {
		collection, err := domain.ParseCollection(*only)
		if err != nil {
			log.Fatalf("Invalid collection %q: %v", *only, err)
		}
		collections = []domain.Collection{collection}
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	// Producer-only client: no consumer group
	kafkaClient, err := kafka.NewKafkaClient(logger, *brokers, "", 100)
	if err != nil {
		log.Fatalf("Failed to create Kafka client: %v", err)
	}
	defer kafkaClient.Close()

	// Setup graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	isInfinite := *totalMessages == -1
	messagesSent := 0
	startTime := time.Now()

	for i := 0; isInfinite || i < *totalMessages; i++ {
		if ctx.Err() != nil {
			log.Println("Shutdown requested, stopping message generation")
			break
		}

		collection := collections[i%len(collections)]
		message, err := generateMessage(collection, *documentsPerMessage)
		if err != nil {
			log.Printf("Failed to generate %s message: %v", collection, err)
			continue
		}

		value, err := json.Marshal(message)
		if err != nil {
			log.Printf("Failed to marshal message: %v", err)
			continue
		}

		// Key by collection: one partition per collection keeps the documents ordered
		if err := kafkaClient.Producer([]kafka.Message{{Key: string(collection), Value: value}}, *topic); err != nil {
			log.Printf("Failed to send message: %v", err)
			continue
		}
		messagesSent++

		if messagesSent%20 == 0 {
			log.Printf("Sent %d messages (%.1f msg/sec)", messagesSent, float64(messagesSent)/time.Since(startTime).Seconds())
		}

		if *delayMs > 0 {
			time.Sleep(time.Duration(*delayMs) * time.Millisecond)
		}
	}

	log.Printf("✅ Completed! Sent %d messages in %v", messagesSent, time.Since(startTime))
}
