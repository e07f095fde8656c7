package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"lms_commerce/pkg/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Hammers the discount claim endpoint to check that stock never
// oversells under concurrency.
var (
	baseURL    = flag.String("url", "http://localhost:8080", "server base URL")
	totalUsers = flag.Int("users", 10000, "number of concurrent claimers")
	totalStock = flag.Int("stock", 5, "discount code stock")
	jwtSecret  = flag.String("secret", "", "JWT secret (must match the server)")
)

var httpClient *http.Client

func init() {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 2000
	t.MaxIdleConnsPerHost = 2000
	t.MaxConnsPerHost = 2000
	httpClient = &http.Client{
		Transport: t,
		Timeout:   10 * time.Second,
	}
}

func main() {
	flag.Parse()
	if *jwtSecret == "" {
		fmt.Println("missing -secret")
		return
	}

	code := fmt.Sprintf("STRESS%d", time.Now().Unix())
	if err := createDiscount(code); err != nil {
		fmt.Printf("failed to create discount code: %v\n", err)
		return
	}

	fmt.Printf("claiming: %d users, %d stock, code %s\n", *totalUsers, *totalStock, code)
	time.Sleep(1 * time.Second)

	var wg sync.WaitGroup
	var mu sync.Mutex
	successCount := 0
	failCount := 0

	start := time.Now()

	for i := 0; i < *totalUsers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if claimDiscount(code, uuid.New().String()) {
				mu.Lock()
				successCount++
				mu.Unlock()
			} else {
				mu.Lock()
				failCount++
				mu.Unlock()
			}
		}()
	}

	wg.Wait()
	duration := time.Since(start)
	qps := float64(*totalUsers) / duration.Seconds()

	fmt.Println("--------------------------------------------------")
	fmt.Printf("duration: %v\n", duration)
	fmt.Printf("requests: %d\n", *totalUsers)
	fmt.Printf("QPS: %.2f\n", qps)
	fmt.Printf("claimed: %d (expected: %d)\n", successCount, *totalStock)
	fmt.Printf("rejected: %d\n", failCount)
	fmt.Println("--------------------------------------------------")

	if successCount > *totalStock {
		fmt.Println("OVERSOLD: more claims succeeded than stock")
	}
}

// signToken mints a token the way the auth provider does.
func signToken(userID string, role int) string {
	claims := utils.Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, _ := token.SignedString([]byte(*jwtSecret))
	return signed
}

func createDiscount(code string) error {
	payload := map[string]interface{}{
		"code":       code,
		"name":       "stress test code",
		"percentOff": 10,
		"total":      *totalStock,
		"startTime":  time.Now().Format(time.RFC3339),
		"endTime":    time.Now().Add(24 * time.Hour).Format(time.RFC3339),
	}
	body, _ := json.Marshal(payload)

	req, err := http.NewRequest(http.MethodPost, *baseURL+"/api/discounts/", bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+signToken(uuid.New().String(), utils.RoleAdmin))

	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(respBody))
	}
	return nil
}

func claimDiscount(code, userID string) bool {
	req, err := http.NewRequest(http.MethodPost, fmt.Sprintf("%s/api/discounts/%s/claim", *baseURL, code), nil)
	if err != nil {
		return false
	}
	req.Header.Set("Authorization", "Bearer "+signToken(userID, utils.RoleUser))

	resp, err := httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	var result struct {
		Success bool `json:"success"`
	}
	body, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(body, &result); err != nil {
		return false
	}
	return resp.StatusCode == http.StatusOK && result.Success
}
