package main

import (
	"os"
	"os/signal"
	"syscall"

	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/kursio/backend/api"
	"github.com/kursio/backend/db"
	"github.com/kursio/backend/payments"
	"go.vocdoni.io/dvote/log"
)

func main() {
	// define flags
	flag.StringP("host", "h", "0.0.0.0", "listen address")
	flag.IntP("port", "p", 4242, "listen port")
	flag.String("mongo-url", "", "The URL of the MongoDB server")
	flag.String("mongo-db", "kursio", "The name of the MongoDB database")
	flag.String("frontend-url", "", "the base URL of the frontend, used for checkout redirects")
	flag.String("log-level", "info", "log level (debug, info, warn, error)")
	// parse flags
	flag.Parse()
	// initialize Viper
	viper.SetEnvPrefix("KURSIO")
	if err := viper.BindPFlags(flag.CommandLine); err != nil {
		panic(err)
	}
	viper.AutomaticEnv()
	// read the configuration
	host := viper.GetString("host")
	port := viper.GetInt("port")
	mongoURL := viper.GetString("mongo-url")
	mongoDB := viper.GetString("mongo-db")
	frontendURL := viper.GetString("frontend-url")
	log.Init(viper.GetString("log-level"), "stdout", nil)
	if frontendURL == "" {
		log.Fatal("frontend-url is required")
	}
	// initialize the MongoDB database
	database, err := db.New(mongoURL, mongoDB)
	if err != nil {
		log.Fatalf("could not create the MongoDB database: %v", err)
	}
	defer database.Close()
	// report which secrets are present before validating them, to ease
	// deployment debugging
	log.Infow("environment check",
		"KURSIO_STRIPEAPISECRET", os.Getenv("KURSIO_STRIPEAPISECRET") != "",
		"KURSIO_STRIPEWEBHOOKSECRET", os.Getenv("KURSIO_STRIPEWEBHOOKSECRET") != "",
		"frontendURL", frontendURL)
	// create the payments service, checking the Stripe credentials are set
	paymentsConfig, err := payments.NewConfig(frontendURL)
	if err != nil {
		log.Fatalf("invalid payments configuration: %v", err)
	}
	paymentsService, err := payments.NewService(paymentsConfig, database)
	if err != nil {
		log.Fatalf("could not create the payments service: %v", err)
	}
	// create the local API server
	api.New(&api.Config{
		Host:     host,
		Port:     port,
		DB:       database,
		Payments: paymentsService,
	}).Start()
	// wait forever, as the server is running in a goroutine
	log.Infow("server started", "host", host, "port", port, "frontend", frontendURL)
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c
}
