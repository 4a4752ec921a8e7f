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
	"encoding/json"
	"fmt"
	"log"

	"github.com/SecureApiGateway/secure-api-gateway-ob-uk-rs-sub009/config"
	"github.com/spf13/cobra"
)

const redacted = "********"

// printableConfig copies cnf with credentials masked.
func printableConfig(cnf config.Configuration) config.Configuration {
	if cnf.Server.SecretKey != "" {
		cnf.Server.SecretKey = redacted
	}
	if cnf.DataSource.Dns != "" {
		cnf.DataSource.Dns = redacted
	}
	if cnf.Redis.Dns != "" {
		cnf.Redis.Dns = redacted
	}
	headers := make(map[string]string, len(cnf.ConsentStore.Headers))
	for name := range cnf.ConsentStore.Headers {
		headers[name] = redacted
	}
	cnf.ConsentStore.Headers = headers
	return cnf
}

// configCommands prints the computed configuration, including defaults, with secrets masked.
func configCommands(app *serverInstance) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "config outputs your instance's computed configuration",
		Run: func(cmd *cobra.Command, args []string) {
			data, err := json.MarshalIndent(printableConfig(*app.cnf), "", "    ")
			if err != nil {
				log.Fatalf("Error printing config: %v\n", err)
			}

			fmt.Println(string(data))
		},
	}
	return cmd
}
