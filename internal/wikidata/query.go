package wikidata

import "fmt"

// sparqlQuery returns the SPARQL query selecting Supreme Court of Ghana cases
// together with their date, citation, court, majority opinion, source, and the
// comma-joined English labels of their judges. maxResults bounds the inner
// item selection.
func sparqlQuery(maxResults int) string {
	return fmt.Sprintf(`
SELECT DISTINCT ?item ?itemLabel ?itemDescription ?date ?legal_citation ?courtLabel ?majority_opinionLabel ?sourceLabel (GROUP_CONCAT(DISTINCT ?judge; SEPARATOR = ", ") AS ?judges) WHERE {
  {
    SELECT DISTINCT * WHERE {
      ?item (wdt:P31/(wdt:P279*)) wd:Q114079647;
        (wdt:P17/(wdt:P279*)) wd:Q117;
        (wdt:P1001/(wdt:P279*)) wd:Q117;
        (wdt:P793/(wdt:P279*)) wd:Q7099379;
        wdt:P4884 ?court.
      ?court (wdt:P279*) wd:Q1513611.
    }
    LIMIT %d
  }
  ?item wdt:P577 ?date;
    wdt:P1031 ?legal_citation;
    wdt:P1433 ?source;
    wdt:P1594 _:b3.
  _:b3 rdfs:label ?judge.
  FILTER((LANG(?judge)) = "en")
  SERVICE wikibase:label { bd:serviceParam wikibase:language "[AUTO_LANGUAGE],mul,en". }
}
GROUP BY ?item ?itemLabel ?itemDescription ?date ?legal_citation ?courtLabel ?majority_opinionLabel ?sourceLabel
ORDER BY (?date)`, maxResults)
}
