package main

import (
	"strconv"

	"github.com/jmeta/jmeta/driver"
	"github.com/jmeta/jmeta/httpclient"
	"github.com/jmeta/jmeta/vendor_corretto"
	"github.com/jmeta/jmeta/vendor_dragonwell"
	"github.com/jmeta/jmeta/vendor_jetbrains"
	"github.com/jmeta/jmeta/vendor_kona"
	"github.com/jmeta/jmeta/vendor_liberica"
	"github.com/jmeta/jmeta/vendor_mandrel"
	"github.com/jmeta/jmeta/vendor_microsoft"
	"github.com/jmeta/jmeta/vendor_openjdk"
	"github.com/jmeta/jmeta/vendor_oracle"
	"github.com/jmeta/jmeta/vendor_oraclegraalvm"
	"github.com/jmeta/jmeta/vendor_sapmachine"
	"github.com/jmeta/jmeta/vendor_semeru"
	"github.com/jmeta/jmeta/vendor_temurin"
	"github.com/jmeta/jmeta/vendor_trava"
	"github.com/jmeta/jmeta/vendor_zulu"
)

// supportedMajors are the Java feature versions jmeta tracks across the
// landing-page and per-major-repo vendors.
var supportedMajors = []int{8, 11, 17, 21, 24}

// allUpdaters builds the full catalog of vendor updaters, one per
// vendor/major-version combination the vendor actually distributes.
func allUpdaters(c *httpclient.Client) []driver.Updater {
	var us []driver.Updater

	for _, major := range supportedMajors {
		us = append(us,
			vendor_corretto.New(correttoSlug(major), c),
			vendor_temurin.New(major, c),
			vendor_openjdk.New(major, c),
			vendor_oracle.New(major, c),
			vendor_dragonwell.New(dragonwellSlug(major), c),
			vendor_kona.New(konaSlug(major), c),
		)
		if major >= 17 {
			us = append(us, vendor_oraclegraalvm.New(major, c))
		}
		if major == 8 || major == 11 {
			us = append(us, vendor_semeru.New(semeruSlug(major), c), vendor_trava.New(travaSlug(major), c))
		}
	}
	// Liberica, SapMachine, and Mandrel each publish every major version's
	// releases in a single GitHub repo and extract the major themselves
	// from the filename/tag (spec §4.4), so each is registered once, not
	// once per supportedMajors entry.
	us = append(us,
		vendor_zulu.New("jdk", c),
		vendor_zulu.New("jre", c),
		vendor_microsoft.New(c),
		vendor_jetbrains.New("JetBrains/JetBrainsRuntime", c),
		vendor_liberica.New("bell-sw/Liberica", c),
		vendor_sapmachine.New("SAP/SapMachine", c),
		vendor_mandrel.New("graalvm/mandrel", c),
	)
	return us
}

func correttoSlug(major int) string   { return slugFor("corretto", major) }
func dragonwellSlug(major int) string { return slugFor("dragonwell", major) }
func konaSlug(major int) string       { return "Tencent/TencentKona-" + strconv.Itoa(major) }
func semeruSlug(major int) string     { return "ibmruntimes/semeru" + strconv.Itoa(major) + "-binaries" }
func travaSlug(major int) string      { return "TravaOpenJDK/trava-jdk-" + strconv.Itoa(major) + "-dcevm" }

func slugFor(vendor string, major int) string {
	switch vendor {
	case "corretto":
		return "corretto/corretto-" + strconv.Itoa(major)
	case "dragonwell":
		return "dragonwell-project/dragonwell" + strconv.Itoa(major)
	}
	return ""
}
