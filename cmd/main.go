/*
Copyright 2024 Blnk Finance Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"fmt"
	"log"
	"os"

	rs "github.com/SecureApiGateway/secure-api-gateway-ob-uk-rs-sub009"
	"github.com/SecureApiGateway/secure-api-gateway-ob-uk-rs-sub009/config"
	"github.com/SecureApiGateway/secure-api-gateway-ob-uk-rs-sub009/database"
	"github.com/SecureApiGateway/secure-api-gateway-ob-uk-rs-sub009/internal/consentstore"
	"github.com/SecureApiGateway/secure-api-gateway-ob-uk-rs-sub009/internal/notification"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// CLI represents the command-line application, encapsulating the root Cobra command.
type CLI struct {
	cmd *cobra.Command
}

// serverInstance holds the resource server and its configuration for the running command.
type serverInstance struct {
	server *rs.ResourceServer
	cnf    *config.Configuration
}

func recoverPanic() {
	if rec := recover(); rec != nil {
		logrus.Error(rec)
		os.Exit(1)
	}
}

// preRun loads the configuration and builds the resource server before any command runs.
func preRun(app *serverInstance, configFile *string) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := config.InitConfig(*configFile)
		if err != nil {
			log.Fatal("error loading config ", err)
		}

		cnf, err := config.Fetch()
		if err != nil {
			return err
		}

		// Printing the configuration must work without a reachable database.
		if cmd.Name() == "config" {
			app.cnf = cnf
			return nil
		}

		server, err := setupServer(cnf)
		if err != nil {
			if cnf.Notification.Slack.WebhookUrl != "" {
				_ = notification.SlackNotification(cnf.Notification.Slack.WebhookUrl, err)
			}
			log.Fatal(err)
		}

		app.server = server
		app.cnf = cnf
		return nil
	}
}

// setupServer connects the datasource and the consent store client and builds the resource server.
func setupServer(cfg *config.Configuration) (*rs.ResourceServer, error) {
	db, err := database.NewDataSource(cfg)
	if err != nil {
		return nil, fmt.Errorf("error getting datasource: %v", err)
	}

	server, err := rs.NewResourceServer(db, consentstore.NewClient(cfg.ConsentStore))
	if err != nil {
		return nil, fmt.Errorf("error creating resource server: %v", err)
	}
	return server, nil
}

func NewCLI() *CLI {
	var configFile string
	app := &serverInstance{}

	var rootCmd = &cobra.Command{
		Use:   "obrs",
		Short: "Open Banking read/write resource server",
		Run:   func(cmd *cobra.Command, args []string) {},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "./obrs.json", "Configuration file for the resource server")
	rootCmd.PersistentPreRunE = preRun(app, &configFile)

	rootCmd.AddCommand(serverCommands(app))
	rootCmd.AddCommand(workerCommands(app))
	rootCmd.AddCommand(migrateCommands(app))
	rootCmd.AddCommand(configCommands(app))

	return &CLI{cmd: rootCmd}
}

func (c CLI) executeCLI() {
	if err := c.cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	defer recoverPanic()

	cli := NewCLI()
	cli.executeCLI()
}
