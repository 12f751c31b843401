/*
Package qrhub/qrsdk is a typed client for the qrhub REST API.

	client := qrsdk.NewClient("http://localhost:3001")

	_, err := client.Register(ctx, qrsdk.RegisterRequest{Name: "A", Email: "a@x.com", Password: "p"})
	// ... read the mailed code ...
	_, err = client.VerifyCode(ctx, "a@x.com", code)

	login, err := client.Login2(ctx, "a@x.com", "p")
	session := client.WithSession(login.Token)

	project, err := session.SaveProject(ctx, qrsdk.SaveProjectRequest{Name: "Menu", Text: "example.com/menu"})

Every method returns *APIError when the server answers with an unexpected
status; StatusCode(err) extracts the HTTP status.
*/
package qrsdk
