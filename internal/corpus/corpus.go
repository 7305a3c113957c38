// Package corpus provides labeled training data for the category
// classifier: a built-in starter corpus and a CSV loader for user-supplied
// data.
package corpus

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"

	"kharcha/internal/model"
)

// Default returns the built-in training corpus. It is intentionally small, a
// starting point that covers every category; real accuracy comes from
// retraining on the user's own labeled expenses.
func Default() []model.TrainingExample {
	return []model.TrainingExample{
		{Text: "Paid 500 to Swiggy for dinner", Label: model.CategoryDining},
		{Text: "DMart grocery shopping 2500", Label: model.CategoryGroceries},
		{Text: "Uber ride to airport 850", Label: model.CategoryTransport},
		{Text: "Netflix subscription 199", Label: model.CategoryEntertainment},
		{Text: "Electricity bill payment 1200", Label: model.CategoryUtilities},
		{Text: "Apollo pharmacy medicines 450", Label: model.CategoryHealthcare},
		{Text: "Myntra shoes purchase 1999", Label: model.CategoryShopping},
		{Text: "Metro card recharge 200", Label: model.CategoryTransport},
		{Text: "Dominos pizza order 699", Label: model.CategoryDining},
		{Text: "Rent payment 15000", Label: model.CategoryHousing},
		{Text: "Zerodha brokerage 20", Label: model.CategoryInvestment},
		{Text: "Phone recharge Jio 299", Label: model.CategoryUtilities},
		{Text: "BookMyShow movie tickets 600", Label: model.CategoryEntertainment},
		{Text: "Vegetables from local market 300", Label: model.CategoryGroceries},
		{Text: "OLA auto rickshaw 60", Label: model.CategoryTransport},
		{Text: "LIC premium payment 5000", Label: model.CategoryInsurance},
		{Text: "Udemy course purchase 399", Label: model.CategoryEducation},
		{Text: "Haldiram snacks 250", Label: model.CategoryGroceries},
		{Text: "Petrol pump fill 2000", Label: model.CategoryTransport},
		{Text: "Amazon Prime renewal 1499", Label: model.CategoryEntertainment},
		{Text: "Spent 1200 on groceries at BigBazaar", Label: model.CategoryGroceries},
		{Text: "Weekly sabzi and fruits 450", Label: model.CategoryGroceries},
		{Text: "Kirana store monthly ration 1800", Label: model.CategoryGroceries},
		{Text: "Zomato food delivery 450", Label: model.CategoryDining},
		{Text: "KFC bucket with friends 899", Label: model.CategoryDining},
		{Text: "Cafe coffee and snacks 320", Label: model.CategoryDining},
		{Text: "Biryani dinner takeaway 480", Label: model.CategoryDining},
		{Text: "Metro ticket to Connaught Place 60", Label: model.CategoryTransport},
		{Text: "Rapido bike ride 85", Label: model.CategoryTransport},
		{Text: "IRCTC train ticket to Pune 1250", Label: model.CategoryTransport},
		{Text: "Society maintenance charge 3500", Label: model.CategoryHousing},
		{Text: "House painting advance 8000", Label: model.CategoryHousing},
		{Text: "Plumber repair work 600", Label: model.CategoryHousing},
		{Text: "New sofa furniture 22000", Label: model.CategoryHousing},
		{Text: "Gas cylinder booking 1100", Label: model.CategoryHousing},
		{Text: "Hotstar yearly plan 1499", Label: model.CategoryEntertainment},
		{Text: "Spotify premium 119", Label: model.CategoryEntertainment},
		{Text: "PVR weekend movie 750", Label: model.CategoryEntertainment},
		{Text: "Doctor consultation fee 800", Label: model.CategoryHealthcare},
		{Text: "1mg medicine order 560", Label: model.CategoryHealthcare},
		{Text: "Full body checkup 2200", Label: model.CategoryHealthcare},
		{Text: "Dental clinic visit 1500", Label: model.CategoryHealthcare},
		{Text: "Flipkart shopping 3500", Label: model.CategoryShopping},
		{Text: "Ajio kurta order 1299", Label: model.CategoryShopping},
		{Text: "New running shoes 2799", Label: model.CategoryShopping},
		{Text: "Meesho home accessories 499", Label: model.CategoryShopping},
		{Text: "Coursera data science course 3999", Label: model.CategoryEducation},
		{Text: "School fees second term 25000", Label: model.CategoryEducation},
		{Text: "Coaching class admission 12000", Label: model.CategoryEducation},
		{Text: "Airtel broadband bill 999", Label: model.CategoryUtilities},
		{Text: "Water bill payment 350", Label: model.CategoryUtilities},
		{Text: "Mobile postpaid bill 599", Label: model.CategoryUtilities},
		{Text: "Health insurance renewal 8500", Label: model.CategoryInsurance},
		{Text: "Car insurance premium 12000", Label: model.CategoryInsurance},
		{Text: "Groww mutual fund SIP 5000", Label: model.CategoryInvestment},
		{Text: "PPF yearly deposit 50000", Label: model.CategoryInvestment},
		{Text: "Stock purchase Upstox 10000", Label: model.CategoryInvestment},
		{Text: "Birthday gift for friend 800", Label: model.CategoryOther},
		{Text: "Donation at temple 501", Label: model.CategoryOther},
		{Text: "Courier parcel charges 140", Label: model.CategoryOther},
		{Text: "Haircut at salon 250", Label: model.CategoryOther},
	}
}

// LoadCSV reads training examples from a two-column CSV file of
// text,category rows. A first row whose second column is not a known
// category is treated as a header and skipped; every other row must be
// valid.
func LoadCSV(path string) ([]model.TrainingExample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open corpus file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = 2
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("could not parse corpus file: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("corpus file %s has no rows", path)
	}

	start := 0
	if _, err := model.ParseCategory(rows[0][1]); err != nil {
		start = 1
	}

	examples := make([]model.TrainingExample, 0, len(rows)-start)
	for i := start; i < len(rows); i++ {
		label, err := model.ParseCategory(rows[i][1])
		if err != nil {
			return nil, fmt.Errorf("corpus row %d: %w", i+1, err)
		}
		ex := model.TrainingExample{Text: rows[i][0], Label: label}
		if err := ex.Validate(); err != nil {
			return nil, fmt.Errorf("corpus row %d: %w", i+1, err)
		}
		examples = append(examples, ex)
	}
	if len(examples) == 0 {
		return nil, fmt.Errorf("corpus file %s has no data rows", path)
	}
	return examples, nil
}

// Split partitions examples into training and evaluation sets without
// shuffling: every k-th example goes to evaluation, so the same input always
// produces the same split.
func Split(examples []model.TrainingExample, evalRatio float64) (train, eval []model.TrainingExample) {
	if evalRatio <= 0 || len(examples) == 0 {
		return examples, nil
	}
	if evalRatio >= 1 {
		return nil, examples
	}
	stride := int(math.Round(1 / evalRatio))
	if stride < 2 {
		stride = 2
	}
	for i, ex := range examples {
		if i%stride == stride-1 {
			eval = append(eval, ex)
		} else {
			train = append(train, ex)
		}
	}
	return train, eval
}
