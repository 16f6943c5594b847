package main

import (
	"flag"
	"fmt"
	"net/http"
	"time"

	"github.com/automoto/teerace/master"
	"github.com/sirupsen/logrus"
)

func main() {
	port := flag.Int("port", 8080, "HTTP listen port")
	ttl := flag.Duration("ttl", 90*time.Second, "Server TTL before expiry")
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	reg := master.NewRegistry(*ttl, log)
	go reg.Run(30 * time.Second)

	addr := fmt.Sprintf(":%d", *port)
	log.Infof("master starting on %s (TTL=%s)", addr, *ttl)
	if err := http.ListenAndServe(addr, master.NewMux(reg, log)); err != nil {
		log.Fatalf("master: %v", err)
	}
}
