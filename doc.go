// Package linkurious_client is a Go client for the Linkurious REST API.
//
// The client authenticates with username and password, keeps the session
// cookie on its HTTP transport and re-runs the login transparently when
// the server answers 401 or 403. Responses are returned as generic
// Record / RecordSet maps that can be filled into caller structs,
// pretty-printed as tables or dumped as JSON.
//
// Typical usage:
//
//	config := &linkurious_client.LinkuriousConfig{
//		Host:     "linkurious.example.com",
//		Username: "admin@example.com",
//		Password: "secret",
//	}
//	client, err := linkurious_client.NewLinkuriousRest(config)
//	if err != nil {
//		log.Fatal(err)
//	}
//	status, err := client.Server.Status()
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(status.PrettyJson())
package linkurious_client
