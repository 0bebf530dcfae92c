// Command trform-preview fills a transparent-redirect field template
// interactively and prints the flattened payload plus, when merchant
// credentials are supplied, the signed tr_data token. It exists so template
// changes can be inspected without standing up a checkout page.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	"github.com/danielgtaylor/go-trform/pkg/fieldtree"
	"github.com/danielgtaylor/go-trform/pkg/sign"
)

func main() {
	templatePath := flag.String("template", "", "YAML field template path")
	kind := flag.String("kind", sign.KindCreateTransaction, "transparent redirect kind")
	redirectURL := flag.String("redirect-url", "https://example.com/checkout/done", "redirect URL embedded in tr_data")
	environment := flag.String("environment", "sandbox", "gateway environment: sandbox or production")
	merchantID := flag.String("merchant-id", os.Getenv("TRFORM_MERCHANT_ID"), "merchant ID (or TRFORM_MERCHANT_ID)")
	publicKey := flag.String("public-key", os.Getenv("TRFORM_PUBLIC_KEY"), "merchant public key (or TRFORM_PUBLIC_KEY)")
	privateKey := flag.String("private-key", os.Getenv("TRFORM_PRIVATE_KEY"), "merchant private key (or TRFORM_PRIVATE_KEY)")
	fill := flag.Bool("fill", true, "prompt for field values before flattening")
	flag.Parse()

	if *templatePath == "" {
		log.Fatal("a -template path is required")
	}

	data, err := os.ReadFile(*templatePath)
	if err != nil {
		log.Fatalf("Failed to read template: %v", err)
	}
	tpl, err := fieldtree.TemplateFromYAML(data)
	if err != nil {
		log.Fatalf("Failed to parse template: %v", err)
	}

	tree := fieldtree.New(tpl)
	if *fill {
		if err := promptValues(tree); err != nil {
			log.Fatalf("Failed to collect values: %v", err)
		}
	}

	fmt.Println("Flattened payload:")
	for _, field := range tree.Flatten() {
		fmt.Printf("  %s=%s\n", field.Key, field.Value)
	}

	if *merchantID == "" || *publicKey == "" || *privateKey == "" {
		fmt.Println("\nNo merchant credentials supplied; skipping tr_data generation.")
		return
	}

	creds := sign.Credentials{
		Environment: environmentFromName(*environment),
		MerchantID:  *merchantID,
		PublicKey:   *publicKey,
		PrivateKey:  *privateKey,
	}
	signer, err := sign.NewHMACSigner(creds)
	if err != nil {
		log.Fatalf("Failed to build signer: %v", err)
	}

	trData, err := signer.TRData(*kind, tree.Flatten(), *redirectURL)
	if err != nil {
		log.Fatalf("Failed to sign payload: %v", err)
	}
	fmt.Printf("\nPost to: %s\ntr_data: %s\n", signer.Action(), trData)
}

// promptValues walks the tree's leaves in flatten order and asks for a value
// for each, keeping any template default as the prompt default. An empty
// answer leaves the field empty, matching how a skipped input posts.
func promptValues(tree *fieldtree.Tree) error {
	labels := fieldtree.Labels{}
	for _, leaf := range tree.Leaves() {
		prompt := &survey.Input{
			Message: labels.For(leaf.Path),
			Default: leaf.Value,
			Help:    leaf.Key,
		}
		var answer string
		if err := survey.AskOne(prompt, &answer); err != nil {
			if errors.Is(err, terminal.InterruptErr) {
				return fmt.Errorf("interrupted")
			}
			return err
		}
		if answer == "" {
			continue
		}
		if err := tree.SetValue(leaf.Key, answer); err != nil {
			return err
		}
	}
	return nil
}

func environmentFromName(name string) sign.Environment {
	if strings.EqualFold(strings.TrimSpace(name), "production") {
		return sign.Production
	}
	return sign.Sandbox
}
