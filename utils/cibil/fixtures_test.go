package cibil

const summaryPage = `CIBIL REPORT
Control Number : 3,456,789,012
Date : 14/10/2025
Hello, RAHUL KUMAR SHARMA
Your CIBIL Score is 765
as of Date : 14/10/2025
`

const personalPage = `PERSONAL INFORMATION
Date Of Birth
02/07/1990
Gender Male
IDENTIFICATION
Income Tax ID Number (PAN)
ABCPS1234K
Passport Number
J8369854
Issue Date
15/03/2018
Expiry Date
14/03/2028
CONTACT INFORMATION
Address
FLAT 12 SUNRISE APARTMENTS MG ROAD
PUNE MAHARASHTRA 411001
Category
Residence Address
Date Reported
30/09/2025
Address
3RD FLOOR TECH PARK OFFICE
BANER PUNE 411045
Category
Office Address
Date Reported
31/08/2025
Mobile Phone
9876543210
Email
rahul.sharma@example.com
EMPLOYMENT DETAILS
Account Type
Credit Card
Occupation
Salaried
Income
12,00,000
Monthly / Annual Income Indicator
Annual
Net / Gross Income Indicator
Gross
`

const accountsPage = `ALL ACCOUNTS
Member Name
HDFC BANK
Account Type
Credit Card
Ownership
Individual
Account Number
XXXXXXXX1234
Date Opened / Disbursed
01/04/2019
Date Closed
-
Date of Last Payment
05/09/2025
Credit Limit
2,00,000
High Credit
1,45,000
Current Balance
45,250
Amount Overdue
0
Rate of Interest
-
Repayment Tenure
-
Written-off Amount (Total)
-
Settlement Amount
-
Suit - Filed / Wilful Default
-
Payment History
Sep 2025 STD
Aug 2025 STD
Jul 2025 30
Member Name
ICICI BANK
Account Type
Personal Loan
Ownership
Individual
Account Number
UCN12345ownership
Date Opened / Disbursed
10/01/2018
Date Closed
15/02/2021
Sanctioned Amount
3,00,000
Current Balance
0
Rate of Interest
13.5%
Repayment Tenure
36 months
EMI Amount
10,185
Written-off Amount (Total)
25,000
Settlement Amount
-
Suit - Filed / Wilful Default
Yes
Payment History
Feb 2021 XXX
Jan 2021 SMA
Dec 2020 45
`

const enquiriesPage = `ENQUIRY DETAILS
12/09/2025
BAJAJ FINANCE LTD
Personal Loan
Amount 500000
03/08/2025
SHIVAJI NAGAR BRANCH
Consumer Loan
Amount 75000
21/07/2025
AXIS BANK
Credit Card
Purpose NA
End of report
`

func samplePages() []string {
	return []string{summaryPage, personalPage, accountsPage, enquiriesPage}
}
