package service

import "fmt"

func welcomeEmailTemplate(name, appURL, appName string) (string, string) {
	if name == "" {
		name = "there"
	}
	subject := fmt.Sprintf("Welcome to %s!", appName)
	body := fmt.Sprintf(`Hi %s,

Your coach is ready! Open the app and say hello, we'll start with a few quick questions about the foods you love, the ones you avoid, and what you'd like to achieve.

Check in after each meal to build your streak and earn badges along the way.

Get started: %s

Best,
The %s Team`, name, appURL, appName)

	return subject, body
}
