// Command purge-orphan-statuses finds status annotations whose combatant no
// longer exists and offers to delete them
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/redis/go-redis/v9"
)

const (
	combatantKeyPrefix = "combatant:"
	statusKeyPrefix    = "combatant_status:"
	statusIndexPrefix  = "combatant_status:combatant:"
)

// annotation is the subset of a stored status annotation the check needs
type annotation struct {
	ID          string `json:"id"`
	CombatantID string `json:"combatant_id"`
}

type orphan struct {
	key string
	annotation
}

func main() {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatal("Failed to parse Redis URL:", err)
	}

	client := redis.NewClient(opt)
	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	fmt.Println("Connected to Redis:", redisURL)
	fmt.Println("Scanning for status annotations without a combatant...")

	iter := client.Scan(ctx, 0, statusKeyPrefix+"*", 0).Iterator()

	var (
		orphans      []orphan
		unreadable   []string
		checkedCount int
	)

	for iter.Next(ctx) {
		key := iter.Val()
		if strings.HasPrefix(key, statusIndexPrefix) {
			continue
		}
		checkedCount++

		data, err := client.Get(ctx, key).Result()
		if err != nil {
			fmt.Printf("Error reading %s: %v\n", key, err)
			continue
		}

		var a annotation
		if err := json.Unmarshal([]byte(data), &a); err != nil || a.CombatantID == "" {
			fmt.Printf("✗ Unreadable annotation in %s\n", key)
			unreadable = append(unreadable, key)
			continue
		}

		exists, err := client.Exists(ctx, combatantKeyPrefix+a.CombatantID).Result()
		if err != nil {
			fmt.Printf("Error checking combatant %s: %v\n", a.CombatantID, err)
			continue
		}
		if exists == 0 {
			fmt.Printf("✗ %s belongs to missing combatant %s\n", key, a.CombatantID)
			orphans = append(orphans, orphan{key: key, annotation: a})
		}
	}

	if err := iter.Err(); err != nil {
		log.Fatal("Error during scan:", err)
	}

	fmt.Printf("\nChecked %d annotations, found %d orphaned and %d unreadable\n",
		checkedCount, len(orphans), len(unreadable))

	if len(orphans) == 0 && len(unreadable) == 0 {
		fmt.Println("Nothing to clean up!")
		return
	}

	fmt.Print("\nDo you want to DELETE these annotations? (yes/no): ")
	var response string
	_, _ = fmt.Scanln(&response)

	if response != "yes" {
		fmt.Println("Aborted - no changes made")
		return
	}

	for _, o := range orphans {
		pipe := client.TxPipeline()
		pipe.Del(ctx, o.key)
		pipe.ZRem(ctx, statusIndexPrefix+o.CombatantID, o.ID)
		if _, err := pipe.Exec(ctx); err != nil {
			fmt.Printf("Failed to delete %s: %v\n", o.key, err)
			continue
		}
		fmt.Printf("Deleted %s\n", o.key)
	}
	for _, key := range unreadable {
		if err := client.Del(ctx, key).Err(); err != nil {
			fmt.Printf("Failed to delete %s: %v\n", key, err)
			continue
		}
		fmt.Printf("Deleted %s\n", key)
	}
	fmt.Println("\nCleanup complete!")
}
